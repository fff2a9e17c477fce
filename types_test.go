package pinata

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestPinnedObjectDecoding(t *testing.T) {
	jsonData := `{"IpfsHash": "QmHash", "PinSize": 291, "Timestamp": "2024-01-15T10:00:00.000Z"}`

	var pinned PinnedObject
	if err := json.Unmarshal([]byte(jsonData), &pinned); err != nil {
		t.Fatalf("failed to unmarshal: %v", err)
	}

	if pinned.IPFSHash != "QmHash" {
		t.Errorf("expected hash 'QmHash', got '%s'", pinned.IPFSHash)
	}
	if pinned.PinSize != 291 {
		t.Errorf("expected pin size 291, got %d", pinned.PinSize)
	}
	if pinned.Timestamp != "2024-01-15T10:00:00.000Z" {
		t.Errorf("unexpected timestamp: %s", pinned.Timestamp)
	}
}

func TestPinByHashResultDecoding(t *testing.T) {
	jsonData := `{"id": "job-1", "ipfsHash": "QmHash", "status": "prechecking", "name": "my-pin"}`

	var result PinByHashResult
	if err := json.Unmarshal([]byte(jsonData), &result); err != nil {
		t.Fatalf("failed to unmarshal: %v", err)
	}

	if result.ID != "job-1" {
		t.Errorf("expected id 'job-1', got '%s'", result.ID)
	}
	if result.Status != JobPrechecking {
		t.Errorf("expected status prechecking, got '%s'", result.Status)
	}
	if result.Name != "my-pin" {
		t.Errorf("expected name 'my-pin', got '%s'", result.Name)
	}
}

func TestJobStatusUnknownValue(t *testing.T) {
	// The service may introduce statuses the client does not know about;
	// decoding must not fail on them.
	jsonData := `{"id": "job-1", "ipfs_pin_hash": "QmHash", "date_queued": "2024-01-15", "status": "some_future_status"}`

	var job PinJob
	if err := json.Unmarshal([]byte(jsonData), &job); err != nil {
		t.Fatalf("failed to unmarshal: %v", err)
	}
	if job.Status != JobStatus("some_future_status") {
		t.Errorf("unexpected status: %s", job.Status)
	}
}

func TestPinByHashMarshalOmitsOptionalFields(t *testing.T) {
	data, err := json.Marshal(PinByHash{HashToPin: "QmHash"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	body := string(data)
	if body != `{"hashToPin":"QmHash"}` {
		t.Errorf("unexpected body: %s", body)
	}
}

func TestPinByJSONMarshal(t *testing.T) {
	pin := PinByJSON{
		Content: map[string]string{"name": "user"},
		Metadata: &Metadata{
			Name:      "N",
			KeyValues: map[string]MetadataValue{"k": MetadataString("v")},
		},
	}

	data, err := json.Marshal(pin)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	body := string(data)
	for _, want := range []string{`"pinataContent":{"name":"user"}`, `"pinataMetadata":`, `"name":"N"`, `"k":"v"`} {
		if !strings.Contains(body, want) {
			t.Errorf("expected body to contain %s, got %s", want, body)
		}
	}
	if strings.Contains(body, "pinataOptions") {
		t.Errorf("expected pinataOptions to be omitted, got %s", body)
	}
}

func TestPinOptionsMarshal(t *testing.T) {
	t.Run("cid version zero is sent", func(t *testing.T) {
		data, err := json.Marshal(PinOptions{CIDVersion: Int(0)})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if string(data) != `{"cidVersion":0}` {
			t.Errorf("unexpected body: %s", string(data))
		}
	})

	t.Run("empty options marshal to empty object", func(t *testing.T) {
		data, err := json.Marshal(PinOptions{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if string(data) != `{}` {
			t.Errorf("unexpected body: %s", string(data))
		}
	})

	t.Run("full options", func(t *testing.T) {
		data, err := json.Marshal(PinOptions{
			HostNodes:       []string{"/ip4/1.2.3.4/tcp/4001"},
			CustomPinPolicy: &PinPolicy{Regions: []RegionPolicy{{ID: RegionNYC1, DesiredReplicationCount: 2}}},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		body := string(data)
		for _, want := range []string{`"hostNodes"`, `"customPinPolicy"`, `"id":"NYC1"`, `"desiredReplicationCount":2`} {
			if !strings.Contains(body, want) {
				t.Errorf("expected body to contain %s, got %s", want, body)
			}
		}
	})
}

func TestChangeHashMetadataMarshal(t *testing.T) {
	change := ChangeHashMetadata{
		IPFSPinHash: "QmHash",
		Name:        "renamed",
		KeyValues: map[string]MetadataValue{
			"gone": MetadataDelete(),
		},
	}

	data, err := json.Marshal(change)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	body := string(data)
	for _, want := range []string{`"ipfsPinHash":"QmHash"`, `"name":"renamed"`, `"gone":null`} {
		if !strings.Contains(body, want) {
			t.Errorf("expected body to contain %s, got %s", want, body)
		}
	}
}
