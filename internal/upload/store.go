package upload

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rajeshboldtribe/boldserve/internal/service"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// URLPrefix: публичный префикс, под которым раздаётся каталог загрузок.
const URLPrefix = "/uploads/"

// сколько байт читаем для определения MIME
const sniffLen = 3072

// Только растровые форматы: SVG раздаётся с нашего origin и может нести скрипт.
var allowedImageTypes = []string{"image/png", "image/jpeg", "image/gif", "image/webp"}

var (
	ErrRejected = errors.New("upload rejected")
	ErrTooLarge = fmt.Errorf("%w: file too large", ErrRejected)
	ErrNotImage = fmt.Errorf("%w: only image files are allowed", ErrRejected)
)

type Store struct {
	dir      string
	maxBytes int64
	log      *zap.Logger
}

func NewStore(dir string, maxBytes int64, log *zap.Logger) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &Store{dir: dir, maxBytes: maxBytes, log: log}, nil
}

func (s *Store) Dir() string { return s.dir }

// Save проверяет размер и MIME по содержимому и пишет файл под сгенерированным именем.
// Возвращает относительный путь вида /uploads/<name>.
func (s *Store) Save(ctx context.Context, img *service.ImageUpload) (string, error) {
	if img.Size > s.maxBytes {
		return "", ErrTooLarge
	}

	head := make([]byte, sniffLen)
	n, err := io.ReadFull(img.Content, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read upload: %w", err)
	}
	head = head[:n]

	mt := mimetype.Detect(head)
	if !mimetype.EqualsAny(mt.String(), allowedImageTypes...) {
		s.log.Warn("upload rejected by content type", zap.String("filename", img.Filename), zap.String("mime", mt.String()))
		return "", ErrNotImage
	}

	name := uuid.NewString() + mt.Extension()
	dst := filepath.Join(s.dir, name)

	f, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("create upload file: %w", err)
	}

	src := io.MultiReader(bytes.NewReader(head), img.Content)
	written, err := io.Copy(f, io.LimitReader(src, s.maxBytes+1))
	closeErr := f.Close()
	if err == nil {
		err = closeErr
	}
	if err == nil && written > s.maxBytes {
		err = ErrTooLarge
	}
	if err == nil {
		err = ctx.Err()
	}
	if err != nil {
		_ = os.Remove(dst)
		return "", err
	}

	s.log.Info("image stored", zap.String("file", name), zap.String("mime", mt.String()), zap.Int64("bytes", written))
	return URLPrefix + name, nil
}

func (s *Store) Remove(path string) error {
	name := filepath.Base(strings.TrimPrefix(path, URLPrefix))
	if name == "." || name == "/" || name == "" {
		return nil
	}
	err := os.Remove(filepath.Join(s.dir, name))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}
