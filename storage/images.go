package storage

import (
	"crypto/sha1"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"
)

// Listing photos are stored on Cloudinary via its signed upload REST API.
// Configuration: CLOUDINARY_CLOUD_NAME, CLOUDINARY_API_KEY,
// CLOUDINARY_API_SECRET, CLOUDINARY_FOLDER (optional).

var errCloudinaryNotConfigured = errors.New("cloudinary environment variables are not set")

// UploadBase64Image uploads a (possibly data-URI prefixed) base64 image and
// returns its secure URL.
func UploadBase64Image(base64ImageSrc string, publicID string) (string, error) {
	if base64ImageSrc == "" {
		return "", errors.New("empty image payload")
	}

	payload := base64ImageSrc
	if i := strings.Index(base64ImageSrc, ","); i != -1 {
		payload = base64ImageSrc[i+1:]
	}

	cloudName := os.Getenv("CLOUDINARY_CLOUD_NAME")
	apiKey := os.Getenv("CLOUDINARY_API_KEY")
	apiSecret := os.Getenv("CLOUDINARY_API_SECRET")
	folder := os.Getenv("CLOUDINARY_FOLDER")
	if cloudName == "" || apiKey == "" || apiSecret == "" {
		return "", errCloudinaryNotConfigured
	}

	endpoint := "https://api.cloudinary.com/v1_1/" + cloudName + "/image/upload"
	timestamp := fmt.Sprintf("%d", time.Now().Unix())

	// Signature covers the sorted upload params, then the API secret.
	signBase := ""
	if folder != "" {
		signBase += "folder=" + folder + "&"
	}
	signBase += "public_id=" + publicID + "&timestamp=" + timestamp + apiSecret
	signature := fmt.Sprintf("%x", sha1.Sum([]byte(signBase)))

	form := url.Values{}
	form.Set("file", "data:image/jpeg;base64,"+payload)
	form.Set("api_key", apiKey)
	form.Set("timestamp", timestamp)
	form.Set("public_id", publicID)
	form.Set("signature", signature)
	if folder != "" {
		form.Set("folder", folder)
	}

	resp, err := http.PostForm(endpoint, form)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("cloudinary upload failed: status %d", resp.StatusCode)
	}

	var result struct {
		SecureURL string `json:"secure_url"`
		URL       string `json:"url"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return "", err
	}
	if result.SecureURL != "" {
		return result.SecureURL, nil
	}
	return result.URL, nil
}
