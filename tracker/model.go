package tracker

// Point is one snapshot of a key's accumulator at a tick.
type Point struct {
	Level float64 `yaml:"level"`
	Trend float64 `yaml:"trend"`
}

type PointWithTimestamp struct {
	At    int64 `yaml:"at"`
	Point `yaml:",inline"`
}

type Storage interface {
	Keys() ([]string, error)
	Load(key string) (ds []*PointWithTimestamp, err error)
	Save(key string, ds []*PointWithTimestamp) error
}
