// Package pipeline coordinates the transcoding run: probing candidates,
// filtering already-converted files, building immutable job descriptors,
// executing the safe-apply protocol per job, and scheduling jobs across a
// bounded worker pool.
//
// The safety protocol guarantees a source file is deleted only after a
// verified backup exists and the re-encoded output has been published at its
// final path.
package pipeline
