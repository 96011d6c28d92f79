package export

import (
	"bytes"
	"fmt"
	"io"

	"github.com/golang/snappy"

	"github.com/dd0wney/cluso-artnet/pkg/graph"
	"github.com/dd0wney/cluso-artnet/pkg/layout"
)

const (
	gmlExt    = ".gml"
	snappyExt = ".sz"
)

// DecadeName returns the snapshot file name for a decade graph
func DecadeName(decade int, compressed bool) string {
	return snapshotName(fmt.Sprintf("decade-%d", decade), compressed)
}

// OverallName returns the snapshot file name for the whole-collection graph
func OverallName(compressed bool) string {
	return snapshotName("overall", compressed)
}

func snapshotName(base string, compressed bool) string {
	if compressed {
		return base + gmlExt + snappyExt
	}
	return base + gmlExt
}

// EncodeSnapshot renders g as GML, snappy block-compressed when compress is set.
func EncodeSnapshot(g *graph.Graph, positions map[string]layout.Position, compress bool) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteGML(&buf, g, positions); err != nil {
		return nil, err
	}
	if !compress {
		return buf.Bytes(), nil
	}
	return snappy.Encode(nil, buf.Bytes()), nil
}

// DecodeSnapshot reverses EncodeSnapshot
func DecodeSnapshot(data []byte, compressed bool) (*graph.Graph, map[string]layout.Position, error) {
	if compressed {
		decoded, err := snappy.Decode(nil, data)
		if err != nil {
			return nil, nil, fmt.Errorf("decompress snapshot: %w", err)
		}
		data = decoded
	}
	return ReadGML(bytes.NewReader(data))
}

// ReadSnapshot reads a whole snapshot from r
func ReadSnapshot(r io.Reader, compressed bool) (*graph.Graph, map[string]layout.Position, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, nil, fmt.Errorf("read snapshot: %w", err)
	}
	return DecodeSnapshot(data, compressed)
}
