package config

import (
	"fmt"

	"restaurante360/services/logger"

	"github.com/cloudinary/cloudinary-go/v2"
)

// ConnectCloudinary returns nil when CLOUDINARY_URL is empty; photo uploads
// then fail with STORAGE_UNAVAILABLE.
func ConnectCloudinary(url string, log logger.Logger) (*cloudinary.Cloudinary, error) {
	if url == "" {
		log.Info("CLOUDINARY_URL not set, photo upload disabled")
		return nil, nil
	}
	cld, err := cloudinary.NewFromURL(url)
	if err != nil {
		return nil, fmt.Errorf("init cloudinary: %w", err)
	}
	cld.Config.URL.Secure = true
	return cld, nil
}
