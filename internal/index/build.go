// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package index

import (
	"context"
	"fmt"
)

// Build copies every record of src into dst and returns the record count.
// dst is left untouched if src fails.
func Build(ctx context.Context, src RecordIndex, dst *SQLiteIndex) (int, error) {
	records, err := src.Fetch(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to read source: %w", err)
	}
	if err := dst.Replace(ctx, records); err != nil {
		return 0, fmt.Errorf("failed to write index: %w", err)
	}
	return len(records), nil
}
