package harvest

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"vault-harvester/internal/model"
	"vault-harvester/internal/saver"
)

// ReadVaultList loads the vault references written by the lister, in file order.
// Rows with an empty address are dropped; duplicates are kept.
func ReadVaultList(s saver.TableSaver, path string) ([]model.VaultRef, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrVaultListMissing, path)
		}
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	t, err := s.Load(path)
	if err != nil {
		return nil, fmt.Errorf("read vault list: %w", err)
	}
	addrCol := t.ColumnIndex(model.ColVaultAddress)
	if addrCol < 0 {
		return nil, fmt.Errorf("read vault list %s: missing column %q", path, model.ColVaultAddress)
	}
	nameCol := t.ColumnIndex(model.ColVaultName)

	refs := make([]model.VaultRef, 0, len(t.Rows))
	for r := range t.Rows {
		addr := strings.TrimSpace(t.Cell(r, addrCol))
		if addr == "" {
			continue
		}
		refs = append(refs, model.VaultRef{Address: addr, Name: t.Cell(r, nameCol)})
	}
	return refs, nil
}
