// Package extract recovers archive metadata from .pak files.
//
// DivineExtractor shells out to the Divine packaging tool, asking it for nothing but the archive's
// meta.lsx, then parses that descriptor. A tool failure, or a successful run that leaves no descriptor
// behind, yields the override sentinel rather than an error; a descriptor that exists but is malformed
// is returned as lsx.ErrMalformedDescriptor.
//
// The Extractor interface lets callers substitute a fake in tests.
package extract
