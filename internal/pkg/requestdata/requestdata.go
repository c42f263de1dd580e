package requestdata

import "context"

type contextKey struct{}

// RequestData carries the verified caller identity for the lifetime of a
// request. It is attached by the auth middleware and read by services.
type RequestData struct {
	UID         string
	TokenString string
}

func WithRequestData(ctx context.Context, rd *RequestData) context.Context {
	return context.WithValue(ctx, contextKey{}, rd)
}

func GetRequestData(ctx context.Context) *RequestData {
	if ctx == nil {
		return nil
	}
	rd, _ := ctx.Value(contextKey{}).(*RequestData)
	return rd
}

// UID returns the verified caller uid, or "" when the context carries none.
func UID(ctx context.Context) string {
	rd := GetRequestData(ctx)
	if rd == nil {
		return ""
	}
	return rd.UID
}
