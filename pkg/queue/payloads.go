package queue

// BlobRef identifies a blob in the object store.
type BlobRef struct {
	Bucket    string `json:"bucket"`
	ObjectKey string `json:"object_key"`
	Hash      string `json:"hash,omitempty"`
	Size      int64  `json:"size,omitempty"`
}

// BlobEventPayload is the payload for blob stored/deleted events. Store names
// the owning bridge ("file" or "picture").
type BlobEventPayload struct {
	Blob  BlobRef `json:"blob"`
	Store string  `json:"store,omitempty"`
}
