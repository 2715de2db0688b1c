package tracker

import (
	"os"
	"path"

	"gopkg.in/yaml.v3"
)

func NewCommonStorage(root string) *CommStorage {
	return &CommStorage{
		root: root,
	}
}

type CommStorage struct {
	root string
}

func (stg *CommStorage) fileNameByKey(key string) string {
	return path.Join(stg.root, key)
}

func (stg *CommStorage) Keys() (keys []string, err error) {
	entries, err := os.ReadDir(stg.root)
	if err != nil {
		if os.IsNotExist(err) {
			err = nil
		}

		return
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		keys = append(keys, entry.Name())
	}

	return
}

func (stg *CommStorage) Load(key string) (ds []*PointWithTimestamp, err error) {
	d, err := os.ReadFile(stg.fileNameByKey(key))
	if err != nil {
		return
	}

	err = yaml.Unmarshal(d, &ds)

	return
}

func (stg *CommStorage) Save(key string, ds []*PointWithTimestamp) (err error) {
	_ = os.MkdirAll(stg.root, 0700)

	d, err := yaml.Marshal(ds)
	if err != nil {
		return
	}

	err = os.WriteFile(stg.fileNameByKey(key), d, 0600)

	return
}
