package handler

import (
	"fmt"
	"io"
	"mime/multipart"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"quizcraft/internal/domain"
)

const uploadField = "files"

// readUploads loads every file of the multipart field "files". A file larger
// than maxBytes is rejected; maxBytes <= 0 disables the check.
func readUploads(c *fiber.Ctx, maxBytes int64) ([]domain.Upload, error) {
	form, err := c.MultipartForm()
	if err != nil {
		return nil, domain.NewInvalidInputError("expected a multipart form")
	}
	headers := form.File[uploadField]
	uploads := make([]domain.Upload, 0, len(headers))
	for _, fh := range headers {
		if maxBytes > 0 && fh.Size > maxBytes {
			return nil, domain.NewInvalidInputError(fmt.Sprintf("file %s exceeds the %d byte limit", fh.Filename, maxBytes)).
				WithContext("filename", fh.Filename)
		}
		data, err := readFile(fh)
		if err != nil {
			return nil, domain.NewInternalError("failed to read upload "+fh.Filename, err)
		}
		uploads = append(uploads, domain.Upload{
			Filename: fh.Filename,
			MimeType: fh.Header.Get(fiber.HeaderContentType),
			Data:     data,
		})
	}
	return uploads, nil
}

func readFile(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

// splitList splits a comma separated form value, dropping blanks.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// formInt parses an integer form value; missing or malformed values yield def.
func formInt(c *fiber.Ctx, key string, def int) int {
	v := strings.TrimSpace(c.FormValue(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
