package dto

const (
	DefaultImageCount = 1
	DefaultImageSize  = "1024x1024"
	DefaultImageModel = "dall-e-3"
)

// ImageRequest represents a request for image generation (DALL-E).
type ImageRequest struct {
	Prompt string `json:"prompt"`
	N      int    `json:"n"`
	Size   string `json:"size"`
	Model  string `json:"model"`
}

// NewImageRequest creates a new image generation request
func NewImageRequest(prompt string) *ImageRequest {
	return &ImageRequest{
		Prompt: prompt,
		N:      DefaultImageCount,
		Size:   DefaultImageSize,
		Model:  DefaultImageModel,
	}
}

// ImageResponse represents the response for image generation.
type ImageResponse struct {
	Data []ImageData `json:"data"`
}

// ImageData holds the image payload.
type ImageData struct {
	URL string `json:"url"`
}
