package services

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"time"

	"habitTrackerAPI/internal/apperror"
	"habitTrackerAPI/internal/config"
)

type UploadSignature struct {
	Timestamp int64  `json:"timestamp"`
	Signature string `json:"signature"`
	APIKey    string `json:"apiKey"`
	CloudName string `json:"cloudName"`
	Folder    string `json:"folder"`
}

// SignatureService signs direct browser uploads to Cloudinary. Only the
// folder and timestamp are signed, so those are the only parameters the
// client may send with the upload.
type SignatureService struct {
	cfg config.CloudinaryConfig
	now func() time.Time
}

func NewSignatureService(cfg config.CloudinaryConfig) *SignatureService {
	return &SignatureService{cfg: cfg, now: time.Now}
}

func (s *SignatureService) SetClock(now func() time.Time) {
	s.now = now
}

func (s *SignatureService) Sign() (*UploadSignature, error) {
	if err := s.cfg.Validate(); err != nil {
		return nil, apperror.Internal(err.Error(), nil)
	}

	folder := s.cfg.Folder
	if folder == "" {
		folder = config.DefaultCloudinaryFolder
	}
	timestamp := s.now().Unix()

	return &UploadSignature{
		Timestamp: timestamp,
		Signature: signParams(folder, timestamp, s.cfg.APISecret),
		APIKey:    s.cfg.APIKey,
		CloudName: s.cfg.CloudName,
		Folder:    folder,
	}, nil
}

// signParams is Cloudinary's scheme: the sorted params joined as a query
// string, the secret appended, SHA-1 hex encoded.
func signParams(folder string, timestamp int64, secret string) string {
	sum := sha1.Sum([]byte(fmt.Sprintf("folder=%s&timestamp=%d%s", folder, timestamp, secret)))
	return hex.EncodeToString(sum[:])
}
