package classify

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/pkg/errors"
)

func OutputResult(data [][]float64, output io.Writer, precision int) error {
	writer := csv.NewWriter(output)
	for _, datum := range data {
		record := make([]string, len(datum))
		for i, f := range datum {
			record[i] = strconv.FormatFloat(f, 'f', precision, 64)
		}
		err := writer.Write(record)
		if err != nil {
			return errors.Wrap(err, "写入数据错误")
		}
	}

	writer.Flush()
	return errors.Wrap(writer.Error(), "写入数据错误")
}
