package service

import "context"

func testCtx() context.Context {
	return context.Background()
}

func boolPtr(b bool) *bool {
	return &b
}
