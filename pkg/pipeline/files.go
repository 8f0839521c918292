package pipeline

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

var supportedExtensions = map[string]bool{
	".json": true, ".adf": true,
}

// CollectFiles expands the given paths: files are kept as-is and directories
// are walked for .json and .adf files.
func CollectFiles(paths []string) ([]string, error) {
	var files []string
	for _, root := range paths {
		info, err := os.Stat(root)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			files = append(files, root)
			continue
		}

		err = filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if !info.IsDir() && supportedExtensions[strings.ToLower(filepath.Ext(path))] {
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, errors.Wrapf(err, "walk %s", root)
		}
	}
	return files, nil
}

// LoadDocuments reads every file into a Document. path is the gjson path of
// the ADF document inside each file.
func LoadDocuments(files []string, path string) ([]*Document, error) {
	docs := make([]*Document, 0, len(files))
	for _, file := range files {
		data, err := os.ReadFile(file)
		if err != nil {
			return nil, errors.Wrapf(err, "read %s", file)
		}
		doc := NewDocument(file, data)
		doc.Path = path
		docs = append(docs, doc)
	}
	return docs, nil
}
