package usecase

import "context"

type MessageProducer interface {
	WriteRawMessage(ctx context.Context, req *WriteRawMessageReq) error
}

type ImagesInfra interface {
	UploadImages(ctx context.Context, req *UploadImagesReq) (*UploadImagesRes, error)
	CleanupImages(keys []string)
}

// SessionStore регистрирует анонимные корзинные сессии на стороне сервера.
type SessionStore interface {
	EnsureSession(ctx context.Context, token string) error
}
