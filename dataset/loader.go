// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package dataset

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/poiesic/querygen/core"
)

var (
	// ErrEmptyDataset indicates the file parsed but contained no usable items.
	ErrEmptyDataset = errors.New("dataset contains no usable items")

	// ErrUnsupportedFormat indicates the file extension is neither .json
	// nor .csv.
	ErrUnsupportedFormat = errors.New("unsupported dataset format")

	// ErrInvalidDataset indicates the file content does not match the
	// expected structure.
	ErrInvalidDataset = errors.New("invalid dataset")
)

// Load reads an evaluation dataset from a JSON or CSV file, dispatching on
// the file extension.
func Load(path string) ([]core.EvaluationDataItem, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading dataset %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return ParseJSON(data)
	case ".csv":
		return ParseCSV(data)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
	}
}
