package dto

// AssetUploadRequestDTO asks for a presigned upload slot for a course image.
type AssetUploadRequestDTO struct {
	Filename string `json:"filename" validate:"required"`
}

// AssetUploadResponseDTO carries the object key to store as the course's
// selectedFile reference and the presigned PUT URL to upload to.
type AssetUploadResponseDTO struct {
	Key string `json:"key"`
	URL string `json:"url"`
}

// AssetDownloadResponseDTO carries a presigned GET URL for a stored asset.
type AssetDownloadResponseDTO struct {
	URL string `json:"url"`
}
