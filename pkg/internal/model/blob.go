package model

// FileInfo points at an opaque blob in the object store. Hash is the SHA-256
// hex digest of the blob's bytes; together with ObjectStorageLocation (the
// bucket) it addresses the blob, whose key is "{id}-{hash}".
type FileInfo struct {
	ID                    int32  `gorm:"primaryKey"     json:"id"`
	Hash                  string `gorm:"size:64;index"  json:"hash"`
	ObjectStorageLocation string `gorm:"size:255"       json:"object_storage_location"`
}

func (FileInfo) TableName() string { return "files" }

// PictureInfo points at an image blob tied to one item. Picture blobs are
// partitioned per item: the bucket is "item-{item_id}" and the key is the bare
// hash.
type PictureInfo struct {
	ID                    int32  `gorm:"primaryKey"    json:"id"`
	ItemID                int32  `gorm:"index"         json:"item_id"`
	Description           string `gorm:"type:text"     json:"description"`
	Hash                  string `gorm:"size:64;index" json:"hash"`
	ObjectStorageLocation string `gorm:"size:255"      json:"object_storage_location"`
}

func (PictureInfo) TableName() string { return "pictures" }

// All lists every model for migration.
func All() []any {
	return []any{
		&Item{},
		&Location{},
		&Category{},
		&Gifter{},
		&FileInfo{},
		&PictureInfo{},
	}
}
