package httputil

import (
	"context"

	"github.com/alexedwards/scs/v2"
)

const (
	flashKey      = "flash"
	flashErrorKey = "flash_error"
)

// Flash carries one-shot messages across a POST/redirect/GET.
type Flash struct {
	Success string
	Error   string
}

func PutFlash(sm *scs.SessionManager, ctx context.Context, msg string) {
	sm.Put(ctx, flashKey, msg)
}

func PutFlashError(sm *scs.SessionManager, ctx context.Context, msg string) {
	sm.Put(ctx, flashErrorKey, msg)
}

func PopFlash(sm *scs.SessionManager, ctx context.Context) Flash {
	return Flash{
		Success: sm.PopString(ctx, flashKey),
		Error:   sm.PopString(ctx, flashErrorKey),
	}
}
