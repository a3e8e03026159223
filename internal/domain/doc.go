// Package domain contains the core entities and value objects for flapship.
//
// This is the innermost layer: no HTTP, no file system, no logging. It holds
// the vocabulary the rest of the module speaks.
//
// # Entities
//
//   - [ContentID]: stable identity of a piece of scheduled content
//   - [Content]: resolved source lines ready for encoding
//   - [CacheRecord]: durable trace of the last dispatch for an identity
//   - [Outcome]: the structured result of a dispatch attempt
//
// Entities here carry strings rather than board codes; translation into flap
// codes is the board package's job.
package domain
