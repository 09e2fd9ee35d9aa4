package gallery

import (
	"os"
	"sync"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
)

// NewVFile wraps an existing file inside fs.
func NewVFile(fs afero.Fs, path string) *VFile {
	return &VFile{fs: fs, path: path}
}

// NewVBytes wraps an in-memory image payload.
func NewVBytes(name string, bs []byte) *VFile {
	return &VFile{name: name, bytes: bs}
}

// VFile is an image payload that lives either on a filesystem or in memory.
// Downloads stay in memory until something decides to keep them.
type VFile struct {
	sync.Mutex
	fs    afero.Fs
	path  string
	name  string
	bytes []byte
	freed bool
}

func (v *VFile) IsFile() bool {
	return v.fs != nil || v.path != ""
}

// Name returns the file name the payload should be stored under.
func (v *VFile) Name() string {
	if v.path != "" {
		return v.path
	}
	return v.name
}

func (v *VFile) Filepath() string {
	if v.fs != nil {
		return realPath(v.fs, v.path)
	}
	return v.path
}

func (v *VFile) Free() error {
	v.Lock()
	defer v.Unlock()

	if v.freed {
		return nil
	}

	var err error
	if v.fs != nil {
		err = v.fs.Remove(v.path)
	} else if v.path != "" {
		err = os.Remove(v.path)
	}

	if err == nil {
		v.freed = true
	}

	return err
}

func (v *VFile) Bytes() ([]byte, error) {
	if len(v.bytes) > 0 {
		return v.bytes, nil
	}

	var bs []byte
	var err error

	if v.fs != nil {
		bs, err = afero.ReadFile(v.fs, v.path)
	} else if v.path != "" {
		bs, err = os.ReadFile(v.path)
	} else {
		err = errors.New("no file to read")
	}

	if err != nil {
		err = errors.Wrap(err, "vfile read failed")
	}

	return bs, err
}
