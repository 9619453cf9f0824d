package runtime

import (
	"context"

	"github.com/google/uuid"
	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"go.uber.org/zap"

	"github.com/wippyai/status-bridge/buffer"
	"github.com/wippyai/status-bridge/buffer/wasmmem"
	"github.com/wippyai/status-bridge/errors"
)

const pageSize = 65536

// memoryModule encodes a module whose only content is an exported memory
// of the given minimum size.
func memoryModule(pages uint32) []byte {
	limits := append([]byte{0x01, 0x00}, leb128(pages)...)
	mod := []byte{0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00}
	mod = append(mod, 0x05)
	mod = append(mod, leb128(uint32(len(limits)))...)
	mod = append(mod, limits...)
	mod = append(mod, 0x07, 0x0a, 0x01, 0x06, 'm', 'e', 'm', 'o', 'r', 'y', 0x02, 0x00)
	return mod
}

func leb128(v uint32) []byte {
	var out []byte
	for {
		b := byte(v & 0x7f)
		v >>= 7
		if v != 0 {
			out = append(out, b|0x80)
			continue
		}
		return append(out, b)
	}
}

// NewMemory instantiates a fresh guest memory of pages 64 KiB pages. It
// lives until the Env is closed.
func (e *Env) NewMemory(ctx context.Context, pages uint32) (api.Memory, error) {
	name := "memory-" + uuid.NewString()
	mod, err := e.engine.InstantiateWithConfig(ctx, memoryModule(pages),
		wazero.NewModuleConfig().WithName(name))
	if err != nil {
		return nil, errors.Wrap(errors.PhaseBuffer, errors.KindInvalidInput, err, "instantiate guest memory")
	}
	e.logger.Debug("guest memory created", zap.String("name", name), zap.Uint32("pages", pages))
	return mod.ExportedMemory("memory"), nil
}

// NewRegion allocates a guest memory just large enough for count elements
// of kind and returns a region over it.
func (e *Env) NewRegion(ctx context.Context, kind buffer.ElemKind, count uint32, opts ...wasmmem.Option) (*wasmmem.Region, error) {
	if !kind.IsNumeric() {
		return nil, errors.Unsupported(errors.PhaseBuffer, "linear memory cannot hold "+kind.String()+" elements")
	}
	size := uint64(count) * uint64(kind.Size())
	pages := uint32((size + pageSize - 1) / pageSize)
	if pages == 0 {
		pages = 1
	}
	mem, err := e.NewMemory(ctx, pages)
	if err != nil {
		return nil, err
	}
	return wasmmem.NewRegion(mem, 0, count, kind, opts...)
}
