package types

import "time"

type UploadImageResp struct {
	URL         string `json:"url"`
	Key         string `json:"key"`
	ContentType string `json:"contentType"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
}

type PresignRequest struct {
	FileName string `json:"fileName" binding:"required,max=255"`
	FileType string `json:"fileType" binding:"required,oneof=image/jpeg image/png image/gif image/webp"`
}

type PresignResp struct {
	UploadURL string    `json:"uploadUrl"`
	Key       string    `json:"key"`
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expiresAt"`
}
