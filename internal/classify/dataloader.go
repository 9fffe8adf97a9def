package classify

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

type DataFileLoader interface {
	Load(input io.Reader, removeColumn []int) ([][]float64, error)
}

type DataFormat string

const (
	CSV = DataFormat("csv")
)

func NewDataLoader(format DataFormat) DataFileLoader {
	switch format {
	case CSV:
		return &csvLoader{}
	default:
		return nil
	}
}

type csvLoader struct {
}

func (c *csvLoader) Load(input io.Reader, removeColumn []int) ([][]float64, error) {
	reader := csv.NewReader(input)
	reader.FieldsPerRecord = -1
	reader.Comment = '#'

	data := make([][]float64, 0, 16)

	removeSet := make(map[int]struct{})
	for _, rc := range removeColumn {
		removeSet[rc] = struct{}{}
	}

	var record []string
	var err error
	recordRead := 0
	for record, err = reader.Read(); err == nil; record, err = reader.Read() {
		recordRead++

		datum := make([]float64, 0, len(record))
		for i := 0; i < len(record); i++ {
			if _, ok := removeSet[i]; ok {
				continue
			}

			float, err := strconv.ParseFloat(strings.TrimSpace(record[i]), 64)
			if err != nil || math.IsNaN(float) {
				return nil, fmt.Errorf("第%d行第%d个数据有误，数据为[%v]", recordRead, i, record[i])
			}
			datum = append(datum, float)
		}

		data = append(data, datum)
	}

	if err != io.EOF {
		return nil, errors.Wrap(err, "读取数据出错")
	}

	return data, nil
}
