package pinata

// Region identifies a replication region supported by the service.
type Region string

const (
	// RegionFRA1 is Frankfurt, Germany (max 2 replications).
	RegionFRA1 Region = "FRA1"
	// RegionNYC1 is New York City, USA (max 2 replications).
	RegionNYC1 Region = "NYC1"
)

// RegionPolicy is a region and the desired replica count for it.
type RegionPolicy struct {
	ID                      Region `json:"id"`
	DesiredReplicationCount int    `json:"desiredReplicationCount"`
}

// PinPolicy lists the regions content should be replicated to.
type PinPolicy struct {
	Regions []RegionPolicy `json:"regions"`
}

// PinOptions carries additional options accepted by the pinning endpoints.
type PinOptions struct {
	// HostNodes are multiaddresses of nodes the content is already stored on.
	HostNodes []string `json:"hostNodes,omitempty"`
	// CustomPinPolicy overrides the account pin policy for this content.
	CustomPinPolicy *PinPolicy `json:"customPinPolicy,omitempty"`
	// CIDVersion is the CID version IPFS will use when hashing the content.
	CIDVersion *int `json:"cidVersion,omitempty"`
}

// PinByHash asks the service to pin content that already exists on the IPFS
// network, identified by its hash. Pinning happens asynchronously; the result
// is a job that can be tracked via PinJobs.
type PinByHash struct {
	HashToPin string      `json:"hashToPin"`
	Metadata  *Metadata   `json:"pinataMetadata,omitempty"`
	Options   *PinOptions `json:"pinataOptions,omitempty"`
}

// PinByJSON pins an arbitrary JSON-serializable value.
type PinByJSON struct {
	Content  any         `json:"pinataContent"`
	Metadata *Metadata   `json:"pinataMetadata,omitempty"`
	Options  *PinOptions `json:"pinataOptions,omitempty"`
}

// PinByFile pins a local file, or every file under a local directory.
// It is sent as a multipart form rather than JSON.
type PinByFile struct {
	Path     string
	Metadata *Metadata
	Options  *PinOptions
}

// HashPinPolicy changes the pin policy for a single piece of pinned content.
type HashPinPolicy struct {
	IPFSPinHash  string    `json:"ipfsPinHash"`
	NewPinPolicy PinPolicy `json:"newPinPolicy"`
}

// ChangeHashMetadata updates the name and key/value metadata of pinned
// content. A MetadataDelete value removes the corresponding key.
type ChangeHashMetadata struct {
	IPFSPinHash string                   `json:"ipfsPinHash"`
	Name        string                   `json:"name,omitempty"`
	KeyValues   map[string]MetadataValue `json:"keyvalues,omitempty"`
}

// JobStatus is the state of an asynchronous pin job. The service may
// introduce new states, so it is a plain string type.
type JobStatus string

const (
	JobPrechecking   JobStatus = "prechecking"
	JobSearching     JobStatus = "searching"
	JobRetrieving    JobStatus = "retrieving"
	JobExpired       JobStatus = "expired"
	JobOverFreeLimit JobStatus = "over_free_limit"
	JobOverMaxSize   JobStatus = "over_max_size"
	JobInvalidObject JobStatus = "invalid_object"
	JobBadHostNode   JobStatus = "bad_host_node"
)

// PinByHashResult is the job record returned when pinning by hash.
type PinByHashResult struct {
	ID       string    `json:"id"`
	IPFSHash string    `json:"ipfsHash"`
	Status   JobStatus `json:"status"`
	Name     string    `json:"name,omitempty"`
}

// PinnedObject confirms content pinned via PinJSON or PinFile.
type PinnedObject struct {
	IPFSHash  string `json:"IpfsHash"`
	PinSize   int64  `json:"PinSize"`
	Timestamp string `json:"Timestamp"`
}

// PinJob is a single record in the pin queue.
type PinJob struct {
	ID          string            `json:"id"`
	IPFSPinHash string            `json:"ipfs_pin_hash"`
	DateQueued  string            `json:"date_queued"`
	Status      JobStatus         `json:"status"`
	Name        string            `json:"name,omitempty"`
	KeyValues   map[string]string `json:"keyvalues,omitempty"`
	HostNodes   []string          `json:"host_nodes,omitempty"`
	PinPolicy   *PinPolicy        `json:"pin_policy,omitempty"`
}

// PinJobs is a page of pin queue records. Count is the total number of
// records matching the filter, not the number of rows returned.
type PinJobs struct {
	Count int64    `json:"count"`
	Rows  []PinJob `json:"rows"`
}

// PinListItem is a single pinned (or formerly pinned) object.
type PinListItem struct {
	ID           string         `json:"id"`
	IPFSPinHash  string         `json:"ipfs_pin_hash"`
	Size         int64          `json:"size"`
	UserID       string         `json:"user_id"`
	DatePinned   string         `json:"date_pinned"`
	DateUnpinned string         `json:"date_unpinned"`
	Metadata     *Metadata      `json:"metadata,omitempty"`
	Regions      []RegionPolicy `json:"regions,omitempty"`
}

// PinList is a page of pin records.
type PinList struct {
	Count int64         `json:"count"`
	Rows  []PinListItem `json:"rows"`
}

// TotalPinnedData aggregates usage across everything the account has pinned.
// The service returns the sizes as decimal strings.
type TotalPinnedData struct {
	PinCount                     int64  `json:"pin_count"`
	PinSizeTotal                 string `json:"pin_size_total"`
	PinSizeWithReplicationsTotal string `json:"pin_size_with_replications_total"`
}

// Int returns a pointer to v, for optional numeric fields.
func Int(v int) *int { return &v }

// Int64 returns a pointer to v, for optional numeric fields.
func Int64(v int64) *int64 { return &v }
