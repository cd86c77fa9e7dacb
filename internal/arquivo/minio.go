package arquivo

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Config do bucket de documentos de contrato.
type Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

func ConfigFromEnv() Config {
	return Config{
		Endpoint:  os.Getenv("MINIO_ENDPOINT"),
		AccessKey: os.Getenv("MINIO_ACCESS_KEY"),
		SecretKey: os.Getenv("MINIO_SECRET_KEY"),
		Bucket:    os.Getenv("MINIO_BUCKET"),
		UseSSL:    os.Getenv("MINIO_USE_SSL") == "true",
	}
}

// Storage guarda os documentos anexados às submissões de contrato.
type Storage struct {
	client *minio.Client
	config Config
}

func NewStorage(cfg Config) (*Storage, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("erro ao criar cliente minio: %w", err)
	}
	return &Storage{client: client, config: cfg}, nil
}

// EnsureBucket cria o bucket se ainda não existir.
func (s *Storage) EnsureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.config.Bucket)
	if err != nil {
		return fmt.Errorf("erro ao verificar bucket: %w", err)
	}
	if !exists {
		if err := s.client.MakeBucket(ctx, s.config.Bucket, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("erro ao criar bucket: %w", err)
		}
	}
	return nil
}

// Salvar sobe o documento com nome prefixado por uuid e devolve a URL
// pública do objeto.
func (s *Storage) Salvar(ctx context.Context, nomeOriginal, contentType string, r io.Reader, tamanho int64) (string, error) {
	objectName := uuid.New().String() + "-" + filepath.Base(nomeOriginal)
	_, err := s.client.PutObject(ctx, s.config.Bucket, objectName, r, tamanho, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("erro ao subir documento: %w", err)
	}
	return s.urlPublica(objectName), nil
}

// URLTemporaria gera uma URL presignada de download válida por 24h.
// Retorna erro se o objeto não existir.
func (s *Storage) URLTemporaria(ctx context.Context, objectName string) (string, error) {
	if _, err := s.client.StatObject(ctx, s.config.Bucket, objectName, minio.StatObjectOptions{}); err != nil {
		return "", fmt.Errorf("documento não encontrado: %w", err)
	}
	url, err := s.client.PresignedGetObject(ctx, s.config.Bucket, objectName, 24*time.Hour, nil)
	if err != nil {
		return "", fmt.Errorf("erro ao gerar URL presignada: %w", err)
	}
	return url.String(), nil
}

func (s *Storage) urlPublica(objectName string) string {
	protocolo := "http"
	if s.config.UseSSL {
		protocolo = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", protocolo, s.config.Endpoint, s.config.Bucket, objectName)
}
