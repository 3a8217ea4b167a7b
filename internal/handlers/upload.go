package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/rajeshboldtribe/boldserve/internal/service"

	"github.com/gin-gonic/gin"
)

// formImage открывает файл из multipart-поля image. Отсутствие файла — не ошибка (nil).
func formImage(c *gin.Context) (*service.ImageUpload, io.Closer, error) {
	fh, err := c.FormFile("image")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, nil, nil
		}
		return nil, nil, err
	}
	f, err := fh.Open()
	if err != nil {
		return nil, nil, err
	}
	return &service.ImageUpload{Filename: fh.Filename, Size: fh.Size, Content: f}, f, nil
}
