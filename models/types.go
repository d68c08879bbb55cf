package models

import "time"

// Mode selects which selection primitive a configuration draws with.
type Mode string

// Draw modes
const (
	ModeWheel  Mode = "wheel"  // weighted items shown on a wheel
	ModeBox    Mode = "box"    // weighted items drawn blind
	ModeNumber Mode = "number" // integer range
	ModeList   Mode = "list"   // list of names
)

// Valid reports whether m is one of the known modes.
func (m Mode) Valid() bool {
	switch m {
	case ModeWheel, ModeBox, ModeNumber, ModeList:
		return true
	}
	return false
}

// HasItems reports whether configurations of this mode carry an item set.
func (m Mode) HasItems() bool {
	return m == ModeWheel || m == ModeBox
}

// OutcomeKind returns the outcome kind produced by drawing in this mode.
func (m Mode) OutcomeKind() OutcomeKind {
	switch m {
	case ModeWheel, ModeBox:
		return OutcomeItem
	case ModeNumber:
		return OutcomeNumber
	case ModeList:
		return OutcomeNames
	}
	return ""
}

// Role values carried in owner tokens
const (
	RoleOwner = "owner"
	RoleAdmin = "admin"
)

// Limits
const (
	MaxConfigNameLength      = 100
	MaxParticipantNameLength = 50
	DefaultRecordLimit       = 100
	DetailRecordLimit        = 50
)

// Domain types

type Owner struct {
	ID          string    `json:"id"`
	DisplayName string    `json:"display_name"`
	Email       string    `json:"-"` // Never expose in JSON
	CreatedAt   time.Time `json:"created_at"`
}

// Caller is the identity of whoever invokes an owner-scoped operation.
type Caller struct {
	OwnerID string
	Admin   bool
}

type Item struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Weight   int    `json:"weight"`
	ImageURL string `json:"image_url,omitempty"`
	Position int    `json:"position"`
}

type NumberRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// DrawConfiguration is one owner's configured draw. Items, Range and Names
// are populated according to Mode.
type DrawConfiguration struct {
	ID          string       `json:"id"`
	OwnerID     string       `json:"-"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Mode        Mode         `json:"mode"`
	Uniform     bool         `json:"uniform"`
	ShowOdds    bool         `json:"show_odds"`
	ShareCode   string       `json:"share_code"`
	Items       []Item       `json:"items,omitempty"`
	Range       *NumberRange `json:"range,omitempty"`
	Names       []string     `json:"names,omitempty"`
	Version     int          `json:"version"` // bumped by every successful write
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// FindItem returns the item with the given id, if present.
func (c DrawConfiguration) FindItem(id string) (Item, bool) {
	for _, item := range c.Items {
		if item.ID == id {
			return item, true
		}
	}
	return Item{}, false
}

type ConfigSummary struct {
	DrawConfiguration
	RecordCount int `json:"record_count"`
}

// OutcomeKind discriminates Outcome values.
type OutcomeKind string

const (
	OutcomeItem   OutcomeKind = "item"
	OutcomeNumber OutcomeKind = "number"
	OutcomeNames  OutcomeKind = "names"
)

// Outcome is the transient result of one draw. Exactly one of Item, Number
// or Names is set, matching Kind.
type Outcome struct {
	Kind   OutcomeKind `json:"kind"`
	Item   *Item       `json:"item,omitempty"`
	Number *int        `json:"number,omitempty"`
	Names  []string    `json:"names,omitempty"`
}

func ItemOutcome(item Item) Outcome {
	return Outcome{Kind: OutcomeItem, Item: &item}
}

func NumberOutcome(n int) Outcome {
	return Outcome{Kind: OutcomeNumber, Number: &n}
}

func NamesOutcome(names []string) Outcome {
	return Outcome{Kind: OutcomeNames, Names: names}
}

// DrawRecord is the immutable ledger entry for one completed draw.
type DrawRecord struct {
	ID              string    `json:"id"`
	ConfigID        string    `json:"config_id"`
	ParticipantName string    `json:"participant_name"`
	ItemID          *string   `json:"item_id,omitempty"`
	ItemName        *string   `json:"item_name,omitempty"` // snapshot at draw time
	Number          *int      `json:"number,omitempty"`
	Names           []string  `json:"names,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

// Public projection types. These never carry owner identity fields.

type PublicItem struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Weight      int      `json:"weight"`
	ImageURL    string   `json:"image_url,omitempty"`
	Probability *float64 `json:"probability,omitempty"` // percent, only when odds are shown
}

type PublicDraw struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Mode        Mode         `json:"mode"`
	Uniform     bool         `json:"uniform"`
	ShowOdds    bool         `json:"show_odds"`
	ShareCode   string       `json:"share_code"`
	Items       []PublicItem `json:"items,omitempty"`
	Range       *NumberRange `json:"range,omitempty"`
	Names       []string     `json:"names,omitempty"`
	OwnerName   string       `json:"owner_name"`
}

// Request types

type RegisterOwnerRequest struct {
	DisplayName string `json:"display_name"`
	Email       string `json:"email"`
}

type ItemInput struct {
	ID       string `json:"id,omitempty"`
	Name     string `json:"name"`
	Weight   int    `json:"weight"`
	ImageURL string `json:"image_url,omitempty"`
}

type CreateConfigRequest struct {
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Mode        Mode        `json:"mode"`
	Uniform     bool        `json:"uniform"`
	ShowOdds    bool        `json:"show_odds"`
	Items       []ItemInput `json:"items"`
	Min         *int        `json:"min"`
	Max         *int        `json:"max"`
	Names       []string    `json:"names"`
}

// UpdateConfigRequest fields left nil are unchanged. A non-nil Items
// replaces the item set; entries carrying a known id keep it.
type UpdateConfigRequest struct {
	Name        *string     `json:"name"`
	Description *string     `json:"description"`
	Uniform     *bool       `json:"uniform"`
	ShowOdds    *bool       `json:"show_odds"`
	Items       []ItemInput `json:"items"`
	Min         *int        `json:"min"`
	Max         *int        `json:"max"`
	Names       []string    `json:"names"`
}

type SpinRequest struct {
	ParticipantName string `json:"participant_name"`
}

// SubmitOutcomeRequest carries an outcome computed by the client.
type SubmitOutcomeRequest struct {
	ParticipantName string   `json:"participant_name"`
	ItemID          *string  `json:"item_id"`
	Number          *int     `json:"number"`
	Names           []string `json:"names"`
}

type OwnerDrawRequest struct {
	ParticipantName string `json:"participant_name"`
	Count           int    `json:"count"`
}

// Response types

type RegisterOwnerResponse struct {
	OwnerID string `json:"owner_id"`
	Token   string `json:"token"`
}

type ConfigResponse struct {
	Config   DrawConfiguration `json:"config"`
	ShareURL string            `json:"share_url"`
}

type ConfigDetailResponse struct {
	Config   DrawConfiguration `json:"config"`
	ShareURL string            `json:"share_url"`
	Records  []DrawRecord      `json:"records"`
}

type ListConfigsResponse struct {
	Configs []ConfigSummary `json:"configs"`
}

type ListRecordsResponse struct {
	Records []DrawRecord `json:"records"`
}

type DrawResponse struct {
	Record  DrawRecord `json:"record"`
	Outcome Outcome    `json:"outcome"`
}

type AddItemResponse struct {
	ItemID string `json:"item_id"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
