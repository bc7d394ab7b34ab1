package services

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	config "github.com/akashch1512/Prep-Tester/configs"
	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// ImageUploader pushes an image to an external host and returns its public
// URL. Callers check size/type preconditions before calling; the upload
// itself is a single fallible synchronous call with no retries.
type ImageUploader interface {
	Upload(ctx context.Context, data []byte) (string, error)
}

const imgbbEndpoint = "https://api.imgbb.com/1/upload"

type ImgBBUploader struct {
	APIKey   string
	Endpoint string
	Client   *http.Client
}

func NewImgBBUploader(apiKey string) *ImgBBUploader {
	return &ImgBBUploader{
		APIKey:   apiKey,
		Endpoint: imgbbEndpoint,
		Client:   &http.Client{Timeout: 10 * time.Second},
	}
}

type imgbbResponse struct {
	Success bool `json:"success"`
	Data    struct {
		URL string `json:"url"`
	} `json:"data"`
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (u *ImgBBUploader) Upload(ctx context.Context, data []byte) (string, error) {
	if u.APIKey == "" {
		return "", fmt.Errorf("imgbb API key not configured")
	}

	form := url.Values{}
	form.Set("key", u.APIKey)
	form.Set("image", base64.StdEncoding.EncodeToString(data))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.Endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("failed to create upload request: %v", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := u.Client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to reach image host: %v", err)
	}
	defer resp.Body.Close()

	var body imgbbResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("failed to decode image host response: %v", err)
	}
	if resp.StatusCode != http.StatusOK || !body.Success {
		if body.Error.Message != "" {
			return "", fmt.Errorf("image upload failed: %s", body.Error.Message)
		}
		return "", fmt.Errorf("image upload failed with status %d", resp.StatusCode)
	}

	return body.Data.URL, nil
}

type CloudinaryUploader struct {
	cld    *cloudinary.Cloudinary
	Folder string
}

func NewCloudinaryUploader(cloudinaryURL, folder string) (*CloudinaryUploader, error) {
	cld, err := cloudinary.NewFromURL(cloudinaryURL)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Cloudinary: %v", err)
	}
	return &CloudinaryUploader{cld: cld, Folder: folder}, nil
}

func (u *CloudinaryUploader) Upload(ctx context.Context, data []byte) (string, error) {
	result, err := u.cld.Upload.Upload(ctx, bytes.NewReader(data), uploader.UploadParams{
		Folder: u.Folder,
	})
	if err != nil {
		return "", fmt.Errorf("cloudinary upload failed: %v", err)
	}
	return result.SecureURL, nil
}

// NewUploaderFromConfig picks the provider from IMAGE_PROVIDER; imgbb is the
// default so the service runs with nothing but an API key configured.
func NewUploaderFromConfig() (ImageUploader, error) {
	switch config.Config("IMAGE_PROVIDER") {
	case "cloudinary":
		return NewCloudinaryUploader(config.Config("CLOUDINARY_URL"), "prep_tester_profiles")
	default:
		return NewImgBBUploader(config.Config("IMGBB_API_KEY")), nil
	}
}
