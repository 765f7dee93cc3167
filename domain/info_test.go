package domain

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestInfoRoundTrip(t *testing.T) {
	t.Run("project", func(t *testing.T) {
		in := ProjectInfo{
			ID:          17,
			Name:        "claims",
			Description: "scanned claim forms",
			Type:        ProjectTypeImages,
			Meta:        map[string]any{"classes": []any{"claim_id", "signature"}},
			CreatedAt:   "2024-03-01T10:00:00Z",
			UpdatedAt:   "2024-03-02T10:00:00Z",
		}

		data, err := json.Marshal(in)
		if err != nil {
			t.Fatalf("Marshal error = %v", err)
		}
		var out ProjectInfo
		if err := json.Unmarshal(data, &out); err != nil {
			t.Fatalf("Unmarshal error = %v", err)
		}
		if !reflect.DeepEqual(in, out) {
			t.Errorf("round trip mismatch:\n in=%+v\nout=%+v", in, out)
		}
	})

	t.Run("dataset keeps nested meta", func(t *testing.T) {
		in := DatasetInfo{
			ID:   3,
			Name: "batch-1",
			Meta: map[string]any{"project_id": float64(17), "source": "scanner-2"},
		}

		data, err := json.Marshal(in)
		if err != nil {
			t.Fatalf("Marshal error = %v", err)
		}
		var out DatasetInfo
		if err := json.Unmarshal(data, &out); err != nil {
			t.Fatalf("Unmarshal error = %v", err)
		}
		if !reflect.DeepEqual(in, out) {
			t.Errorf("round trip mismatch:\n in=%+v\nout=%+v", in, out)
		}
	})

	t.Run("label geometry", func(t *testing.T) {
		in := LabelInfo{
			ID:       9,
			ClassID:  2,
			Text:     "AB-1234",
			Geometry: []Point2D{{X: 1, Y: 2}, {X: 30, Y: 40}},
		}

		data, err := json.Marshal(in)
		if err != nil {
			t.Fatalf("Marshal error = %v", err)
		}
		var out LabelInfo
		if err := json.Unmarshal(data, &out); err != nil {
			t.Fatalf("Unmarshal error = %v", err)
		}
		if !reflect.DeepEqual(in, out) {
			t.Errorf("round trip mismatch:\n in=%+v\nout=%+v", in, out)
		}
	})
}

func TestDatasetProjectID(t *testing.T) {
	t.Run("int meta", func(t *testing.T) {
		d := DatasetInfo{Meta: map[string]any{"project_id": 17}}
		if got := d.ProjectID(); got != 17 {
			t.Errorf("ProjectID() = %d, want 17", got)
		}
	})

	t.Run("json float meta", func(t *testing.T) {
		d := DatasetInfo{Meta: map[string]any{"project_id": float64(17)}}
		if got := d.ProjectID(); got != 17 {
			t.Errorf("ProjectID() = %d, want 17", got)
		}
	})

	t.Run("missing meta", func(t *testing.T) {
		var d DatasetInfo
		if got := d.ProjectID(); got != 0 {
			t.Errorf("ProjectID() = %d, want 0", got)
		}
	})
}
