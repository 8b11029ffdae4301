package listing

import (
	"fmt"

	"github.com/jontech/backend/internal/domain/catalog"
	"github.com/jontech/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// Audio device kinds
const (
	AudioKindBuds        = "Buds"
	AudioKindEarphones   = "Earphones"
	AudioKindSpeakers    = "Speakers"
	AudioKindHeadphones  = "Headphones"
	AudioKindSoundbars   = "Soundbars"
	AudioKindMicrophones = "Microphones"
	AudioKindOthers      = "Others"
)

// AudioDevice is a source record from the audio category
type AudioDevice struct {
	Base
	Kind             string `gorm:"type:varchar(20);not null"`
	Wireless         bool   `gorm:"not null;default:true"`
	ANC              bool   `gorm:"column:anc;not null;default:false"`
	BatteryLifeHours *int   `gorm:"type:smallint"`
}

// TableName returns the table name for GORM
func (AudioDevice) TableName() string {
	return "audio_devices"
}

// NewAudioDevice creates an audio listing; kind distinguishes buds,
// speakers, soundbars and so on within the category
func NewAudioDevice(name, brand, kind string, priceMin decimal.Decimal) (*AudioDevice, error) {
	base, err := NewBase(name, brand, priceMin)
	if err != nil {
		return nil, err
	}
	if kind == "" {
		kind = AudioKindOthers
	}
	ad := &AudioDevice{Base: base, Kind: kind, Wireless: true}
	ad.Slug = clip(valueobject.Slugify(brand, kind, name), 150)
	return ad, nil
}

// CategorySlug names the source category
func (a *AudioDevice) CategorySlug() string {
	return CategoryAudio
}

// ToCanonical maps the audio device into the canonical product shape,
// qualifying the name with the device kind
func (a *AudioDevice) ToCanonical() catalog.CanonicalFields {
	return catalog.CanonicalFields{
		Name:        clip(fmt.Sprintf("%s (%s)", a.Name, a.Kind), 200),
		Brand:       a.Brand,
		Price:       a.PriceMin,
		OldPrice:    a.oldPrice(),
		Description: a.SpecsText,
		ImageURL:    a.ImageURL,
	}
}

var _ catalog.Projectable = (*AudioDevice)(nil)
