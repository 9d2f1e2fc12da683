package domain

type Role string

const (
	HeroRole     Role = "Hero"
	SidekickRole Role = "Sidekick"
	VillainRole  Role = "Villain"
	SettingRole  Role = "Setting"
	ItemRole     Role = "Magical Item"
)

type Genre string

const (
	AdventureGenre Genre = "Adventure"
	MysteryGenre   Genre = "Mystery"
	RomanceGenre   Genre = "Romance"
	SciFiGenre     Genre = "Sci-Fi"
	FantasyGenre   Genre = "Fantasy"
	HorrorGenre    Genre = "Horror"
	ComedyGenre    Genre = "Comedy"
	BedtimeGenre   Genre = "Bedtime Story"
)

type StoryMode string

const (
	SinglePhotoMode StoryMode = "single"
	MultiPhotoMode  StoryMode = "multi"
)

// StoryLength is the number of panels the generated story should have.
type StoryLength int

const (
	QuickLength    StoryLength = 3
	StandardLength StoryLength = 5
	EpicLength     StoryLength = 8
)

// Photo is one uploaded image with its assigned role. Immutable once
// submitted to the pipeline.
type Photo struct {
	ID       string
	Base64   string
	MimeType string
	Role     Role
}

// StoryConfig is constructed once per generation run and never mutated
// while the pipeline runs.
type StoryConfig struct {
	Mode          StoryMode
	Genre         Genre
	Length        StoryLength
	Photos        []Photo
	ProtagonistID string
	StylePhotoID  string
}

func (c StoryConfig) PanelCount() int {
	return int(c.Length)
}

type CharacterDescription struct {
	Role        Role
	Description string
}

// PanelSpec is the pre-media plan for one panel. Panel numbers are 1-based
// and contiguous within an outline.
type PanelSpec struct {
	PanelNumber int    `json:"panelNumber"`
	Description string `json:"description"`
	Narration   string `json:"narration"`
	ImagePrompt string `json:"imagePrompt"`
}

type StoryOutline struct {
	Title  string      `json:"title"`
	Panels []PanelSpec `json:"panels"`
}

// NarrationResult carries the panel identity alongside the audio handle so
// that assembly is a lookup by panel number, never an assumed array
// position.
type NarrationResult struct {
	PanelNumber int
	AudioURL    string
}

// PanelResult is one finished panel. AudioURL may be empty: a panel
// without narration audio is a valid terminal state, not an error state.
type PanelResult struct {
	PanelNumber int    `json:"panelNumber"`
	Description string `json:"description"`
	Narration   string `json:"narration"`
	ImageURL    string `json:"imageUrl"`
	AudioURL    string `json:"audioUrl,omitempty"`
}

// Story is the externally visible output of a generation run. Once
// assembled it is immutable and owns the media handles its panels hold.
type Story struct {
	Title  string        `json:"title"`
	Panels []PanelResult `json:"panels"`
}

// ProgressEvent reports a coarse pipeline stage transition to the caller.
type ProgressEvent struct {
	StoryID string `json:"story_id"`
	Stage   string `json:"stage"`
	Message string `json:"message"`
}
