// Package photos produces signed upload parameters so the driver app can
// push delivery-evidence photos straight to Cloudinary without routing the
// image bytes through this service.
package photos

import (
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

const DefaultFolder = "aguaruta/evidencia"

// UploadTicket holds everything the client needs for one direct upload.
type UploadTicket struct {
	CloudName string
	APIKey    string
	Timestamp int64
	Signature string
	Folder    string
	PublicID  string
}

// Signer computes Cloudinary upload signatures.
type Signer struct {
	CloudName string
	APIKey    string
	apiSecret string
	Folder    string

	// Injection points for tests.
	now      func() time.Time
	newToken func() string
}

func NewSigner(cloudName, apiKey, apiSecret, folder string) (*Signer, error) {
	if cloudName == "" || apiKey == "" || apiSecret == "" {
		return nil, errors.New("cloudinary signer: cloud name, api key and api secret are required")
	}
	if folder == "" {
		folder = DefaultFolder
	}

	return &Signer{
		CloudName: cloudName,
		APIKey:    apiKey,
		apiSecret: apiSecret,
		Folder:    folder,
		now:       time.Now,
		newToken:  uuid.NewString,
	}, nil
}

// Sign issues upload parameters for a fresh public ID. Cloudinary requires
// the signed parameters concatenated in alphabetical key order, followed by
// the API secret, hashed with SHA-1.
func (s *Signer) Sign() UploadTicket {
	ts := s.now().Unix()
	publicID := s.newToken()

	toSign := fmt.Sprintf("folder=%s&public_id=%s&timestamp=%d%s", s.Folder, publicID, ts, s.apiSecret)
	sum := sha1.Sum([]byte(toSign))

	return UploadTicket{
		CloudName: s.CloudName,
		APIKey:    s.APIKey,
		Timestamp: ts,
		Signature: hex.EncodeToString(sum[:]),
		Folder:    s.Folder,
		PublicID:  publicID,
	}
}

// PhotoURL builds the public delivery URL for a signed upload, suitable for
// storing in the entregas foto_url column.
func (s *Signer) PhotoURL(publicID string) string {
	return fmt.Sprintf("https://res.cloudinary.com/%s/image/upload/%s",
		s.CloudName, strings.TrimPrefix(publicID, "/"))
}
