package queue

// Topic naming: iv.<domain>.<action>.
const (
	TopicBlobStored  = "iv.blob.stored"  // blob written to the object store and its metadata row inserted
	TopicBlobDeleted = "iv.blob.deleted" // blob and metadata row removed
)
