package server

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"strings"

	"rokto/internal/utils"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

const maxAvatarBytes = 5 << 20

// handleUploadAvatar stores the uploaded image in S3 and points the user's
// avatar at its public URL. The object key embeds a fresh id, so re-uploads
// never overwrite an URL already snapshotted elsewhere.
func (s *Service) handleUploadAvatar(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, err := s.currentUser(ctx)
	if err != nil {
		s.respondError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	if err := r.ParseMultipartForm(maxAvatarBytes); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "image file is required")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxAvatarBytes))
	if err != nil {
		s.logger.WithError(err).Error("failed to read avatar upload")
		s.respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	contentType := http.DetectContentType(data)
	if !strings.HasPrefix(contentType, "image/") {
		s.respondError(w, http.StatusBadRequest, "uploaded file is not an image")
		return
	}

	key := fmt.Sprintf("avatars/%s/%s", user.ID, utils.NanoID())

	_, err = s.s3Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.config.S3BucketName),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		s.logger.WithError(err).
			WithField("user_id", user.ID).
			WithField("filename", header.Filename).
			Error("failed to upload avatar to S3")
		s.respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	avatarURL := fmt.Sprintf("%s/%s", strings.TrimSuffix(s.config.S3PublicBaseURL, "/"), key)

	if err := s.users.UpdateAvatar(ctx, user.ID, avatarURL); err != nil {
		s.respondStoreError(w, err)
		return
	}

	updated, err := s.users.User(ctx, user.ID)
	if err != nil {
		s.respondStoreError(w, err)
		return
	}

	s.respondJSON(w, http.StatusOK, updated)
}
