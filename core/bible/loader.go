package bible

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ulikunitz/xz"

	"github.com/eternallight/lumen/core/canon"
	lumerr "github.com/eternallight/lumen/core/errors"
)

// ParseJSON decodes a dataset in the provider's JSON shape.
func ParseJSON(r io.Reader) (*Dataset, error) {
	var ds Dataset
	if err := json.NewDecoder(r).Decode(&ds); err != nil {
		return nil, lumerr.NewParse("JSON", "", err.Error())
	}
	if len(ds.Books) == 0 {
		return nil, lumerr.NewParse("JSON", "", "dataset has no books")
	}
	return &ds, nil
}

// LoadFile loads a dataset file for a translation. A ".xz" suffix is
// transparently decompressed first; the inner format is chosen by extension
// (".xml" for OSIS, JSON otherwise). The registry is only consulted for OSIS
// input, where book IDs must be derived from the translation's book map.
func LoadFile(path string, reg *canon.Registry, translation string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, lumerr.NewIO("open", path, err)
	}
	defer f.Close()

	var r io.Reader = f
	name := path
	if strings.HasSuffix(name, ".xz") {
		xr, err := xz.NewReader(f)
		if err != nil {
			return nil, lumerr.NewParse("xz", path, err.Error())
		}
		r = xr
		name = strings.TrimSuffix(name, ".xz")
	}

	var ds *Dataset
	switch filepath.Ext(name) {
	case ".xml":
		ds, err = ParseOSIS(r, reg, translation)
	default:
		ds, err = ParseJSON(r)
	}
	if err != nil {
		var pe *lumerr.ParseError
		if lumerr.As(err, &pe) && pe.Path == "" {
			pe.Path = path
		}
		return nil, err
	}
	return ds, nil
}

// WriteJSON writes a dataset in the provider's JSON shape. Used by the
// import command to convert OSIS input into the native dataset format.
func WriteJSON(w io.Writer, ds *Dataset) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(ds)
}
