//go:build !linux

package preview

import "context"

func Show(ctx context.Context, path string, opts Options) error {
	return ErrUnsupported
}
