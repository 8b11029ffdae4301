package handler

import (
	"strings"
	"time"

	listingapp "github.com/jontech/backend/internal/application/listing"
	"github.com/jontech/backend/internal/domain/listing"
	"github.com/jontech/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// toDecimalPtr converts a float64 request field to a *decimal.Decimal
func toDecimalPtr(f float64) *decimal.Decimal {
	d := decimal.NewFromFloat(f)
	return &d
}

func toDecimal(f float64) decimal.Decimal {
	return decimal.NewFromFloat(f)
}

// listingFields carries the request fields shared by every category
type listingFields struct {
	Name      string   `json:"name" binding:"required,max=160"`
	Brand     string   `json:"brand" binding:"max=120"`
	PriceMin  float64  `json:"price_min" binding:"min=0"`
	PriceMax  *float64 `json:"price_max"`
	SpecsText string   `json:"specs" binding:"max=255"`
	ImageURL  string   `json:"image" binding:"max=500"`
}

func (f *listingFields) priceMax() *decimal.Decimal {
	if f.PriceMax == nil {
		return nil
	}
	return toDecimalPtr(*f.PriceMax)
}

// decorate assigns the optional display fields the constructors leave to
// the caller
func (f *listingFields) decorate(b *listing.Base) {
	b.PriceMax = f.priceMax()
	b.SpecsText = f.SpecsText
	b.ImageURL = f.ImageURL
}

// listingView is the response shape shared by every category
type listingView struct {
	ID        uuid.UUID  `json:"id"`
	Category  string     `json:"category"`
	Name      string     `json:"name"`
	Brand     string     `json:"brand"`
	Slug      string     `json:"slug"`
	PriceMin  string     `json:"price_min"`
	PriceMax  *string    `json:"price_max"`
	SpecsText string     `json:"specs"`
	ImageURL  string     `json:"image"`
	ProductID *uuid.UUID `json:"product_id"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

func baseView(category string, b *listing.Base) listingView {
	v := listingView{
		ID:        b.ID,
		Category:  category,
		Name:      b.Name,
		Brand:     b.Brand,
		Slug:      b.Slug,
		PriceMin:  b.PriceMin.StringFixed(2),
		SpecsText: b.SpecsText,
		ImageURL:  b.ImageURL,
		ProductID: b.ProductID,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
	if b.PriceMax != nil {
		s := b.PriceMax.StringFixed(2)
		v.PriceMax = &s
	}
	return v
}

func decimalString(d *decimal.Decimal) *string {
	if d == nil {
		return nil
	}
	s := d.String()
	return &s
}

// --- smartphones ---

// SmartphoneRequest is the write payload for the smartphones category
type SmartphoneRequest struct {
	listingFields
	RAMGB         *int     `json:"ram_gb"`
	StorageGB     *int     `json:"storage_gb"`
	BatteryMAh    *int     `json:"battery_mah"`
	CameraMP      *int     `json:"camera_mp"`
	DisplayInches *float64 `json:"display_inches"`
	DisplayType   string   `json:"display_type" binding:"max=40"`
}

func (r *SmartphoneRequest) specs(sp *listing.Smartphone) {
	sp.RAMGB = r.RAMGB
	sp.StorageGB = r.StorageGB
	sp.BatteryMAh = r.BatteryMAh
	sp.CameraMP = r.CameraMP
	if r.DisplayInches != nil {
		sp.DisplayInches = toDecimalPtr(*r.DisplayInches)
	} else {
		sp.DisplayInches = nil
	}
	sp.DisplayType = r.DisplayType
}

func (r *SmartphoneRequest) build() (*listing.Smartphone, error) {
	sp, err := listing.NewSmartphone(r.Name, r.Brand, toDecimal(r.PriceMin))
	if err != nil {
		return nil, err
	}
	r.decorate(&sp.Base)
	r.specs(sp)
	return sp, nil
}

func (r *SmartphoneRequest) apply(sp *listing.Smartphone) error {
	if err := sp.UpdateBase(r.Name, r.Brand, toDecimal(r.PriceMin), r.priceMax(), r.SpecsText, r.ImageURL); err != nil {
		return err
	}
	r.specs(sp)
	return nil
}

// SmartphoneView is the response shape for the smartphones category
type SmartphoneView struct {
	listingView
	RAMGB         *int    `json:"ram_gb"`
	StorageGB     *int    `json:"storage_gb"`
	BatteryMAh    *int    `json:"battery_mah"`
	CameraMP      *int    `json:"camera_mp"`
	DisplayInches *string `json:"display_inches"`
	DisplayType   string  `json:"display_type"`
}

func newSmartphoneView(sp *listing.Smartphone) SmartphoneView {
	return SmartphoneView{
		listingView:   baseView(sp.CategorySlug(), &sp.Base),
		RAMGB:         sp.RAMGB,
		StorageGB:     sp.StorageGB,
		BatteryMAh:    sp.BatteryMAh,
		CameraMP:      sp.CameraMP,
		DisplayInches: decimalString(sp.DisplayInches),
		DisplayType:   sp.DisplayType,
	}
}

// NewSmartphoneListingHandler serves the smartphones category
func NewSmartphoneListingHandler(service *listingapp.Service[listing.Smartphone, *listing.Smartphone]) ListingRoutes {
	return newListingHandler[listing.Smartphone, *listing.Smartphone, SmartphoneRequest](service,
		func(sp *listing.Smartphone) any { return newSmartphoneView(sp) })
}

// --- tablets ---

// TabletRequest is the write payload for the tablets category
type TabletRequest struct {
	listingFields
	RAMGB         *int     `json:"ram_gb"`
	StorageGB     *int     `json:"storage_gb"`
	DisplayInches *float64 `json:"display_inches"`
	DisplayType   string   `json:"display_type" binding:"max=40"`
}

func (r *TabletRequest) specs(t *listing.Tablet) {
	t.RAMGB = r.RAMGB
	t.StorageGB = r.StorageGB
	if r.DisplayInches != nil {
		t.DisplayInches = toDecimalPtr(*r.DisplayInches)
	} else {
		t.DisplayInches = nil
	}
	t.DisplayType = r.DisplayType
}

func (r *TabletRequest) build() (*listing.Tablet, error) {
	t, err := listing.NewTablet(r.Name, r.Brand, toDecimal(r.PriceMin))
	if err != nil {
		return nil, err
	}
	r.decorate(&t.Base)
	r.specs(t)
	return t, nil
}

func (r *TabletRequest) apply(t *listing.Tablet) error {
	if err := t.UpdateBase(r.Name, r.Brand, toDecimal(r.PriceMin), r.priceMax(), r.SpecsText, r.ImageURL); err != nil {
		return err
	}
	r.specs(t)
	return nil
}

// TabletView is the response shape for the tablets category
type TabletView struct {
	listingView
	RAMGB         *int    `json:"ram_gb"`
	StorageGB     *int    `json:"storage_gb"`
	DisplayInches *string `json:"display_inches"`
	DisplayType   string  `json:"display_type"`
}

func newTabletView(t *listing.Tablet) TabletView {
	return TabletView{
		listingView:   baseView(t.CategorySlug(), &t.Base),
		RAMGB:         t.RAMGB,
		StorageGB:     t.StorageGB,
		DisplayInches: decimalString(t.DisplayInches),
		DisplayType:   t.DisplayType,
	}
}

// NewTabletListingHandler serves the tablets category
func NewTabletListingHandler(service *listingapp.Service[listing.Tablet, *listing.Tablet]) ListingRoutes {
	return newListingHandler[listing.Tablet, *listing.Tablet, TabletRequest](service,
		func(t *listing.Tablet) any { return newTabletView(t) })
}

// --- televisions ---

// TelevisionRequest is the write payload for the televisions category
type TelevisionRequest struct {
	listingFields
	ScreenSizeInches int    `json:"screen_size_inches" binding:"required"`
	Panel            string `json:"panel" binding:"max=16"`
	Resolution       string `json:"resolution" binding:"max=8"`
	Smart            *bool  `json:"smart"`
	HDR              *bool  `json:"hdr"`
	RefreshRateHz    *int   `json:"refresh_rate_hz"`
}

func (r *TelevisionRequest) specs(tv *listing.Television) {
	if r.Panel != "" {
		tv.Panel = r.Panel
	}
	if r.Resolution != "" {
		tv.Resolution = r.Resolution
	}
	if r.Smart != nil {
		tv.Smart = *r.Smart
	}
	if r.HDR != nil {
		tv.HDR = *r.HDR
	}
	tv.RefreshRateHz = r.RefreshRateHz
}

func (r *TelevisionRequest) build() (*listing.Television, error) {
	tv, err := listing.NewTelevision(r.Name, r.Brand, r.ScreenSizeInches, toDecimal(r.PriceMin))
	if err != nil {
		return nil, err
	}
	r.decorate(&tv.Base)
	r.specs(tv)
	return tv, nil
}

func (r *TelevisionRequest) apply(tv *listing.Television) error {
	if r.ScreenSizeInches <= 0 {
		return shared.NewDomainError("INVALID_SCREEN_SIZE", "Screen size must be positive")
	}
	if err := tv.UpdateBase(r.Name, r.Brand, toDecimal(r.PriceMin), r.priceMax(), r.SpecsText, r.ImageURL); err != nil {
		return err
	}
	tv.ScreenSizeInches = r.ScreenSizeInches
	r.specs(tv)
	return nil
}

// TelevisionView is the response shape for the televisions category
type TelevisionView struct {
	listingView
	ScreenSizeInches int    `json:"screen_size_inches"`
	Panel            string `json:"panel"`
	Resolution       string `json:"resolution"`
	Smart            bool   `json:"smart"`
	HDR              bool   `json:"hdr"`
	RefreshRateHz    *int   `json:"refresh_rate_hz"`
}

func newTelevisionView(tv *listing.Television) TelevisionView {
	return TelevisionView{
		listingView:      baseView(tv.CategorySlug(), &tv.Base),
		ScreenSizeInches: tv.ScreenSizeInches,
		Panel:            tv.Panel,
		Resolution:       tv.Resolution,
		Smart:            tv.Smart,
		HDR:              tv.HDR,
		RefreshRateHz:    tv.RefreshRateHz,
	}
}

// NewTelevisionListingHandler serves the televisions category
func NewTelevisionListingHandler(service *listingapp.Service[listing.Television, *listing.Television]) ListingRoutes {
	return newListingHandler[listing.Television, *listing.Television, TelevisionRequest](service,
		func(tv *listing.Television) any { return newTelevisionView(tv) })
}

// --- audio ---

// AudioDeviceRequest is the write payload for the audio category
type AudioDeviceRequest struct {
	listingFields
	Kind             string `json:"kind" binding:"max=20"`
	Wireless         *bool  `json:"wireless"`
	ANC              *bool  `json:"anc"`
	BatteryLifeHours *int   `json:"battery_life_hours"`
}

func (r *AudioDeviceRequest) specs(a *listing.AudioDevice) {
	if r.Wireless != nil {
		a.Wireless = *r.Wireless
	}
	if r.ANC != nil {
		a.ANC = *r.ANC
	}
	a.BatteryLifeHours = r.BatteryLifeHours
}

func (r *AudioDeviceRequest) build() (*listing.AudioDevice, error) {
	a, err := listing.NewAudioDevice(r.Name, r.Brand, r.Kind, toDecimal(r.PriceMin))
	if err != nil {
		return nil, err
	}
	r.decorate(&a.Base)
	r.specs(a)
	return a, nil
}

func (r *AudioDeviceRequest) apply(a *listing.AudioDevice) error {
	if err := a.UpdateBase(r.Name, r.Brand, toDecimal(r.PriceMin), r.priceMax(), r.SpecsText, r.ImageURL); err != nil {
		return err
	}
	if r.Kind != "" {
		a.Kind = r.Kind
	}
	r.specs(a)
	return nil
}

// AudioDeviceView is the response shape for the audio category
type AudioDeviceView struct {
	listingView
	Kind             string `json:"kind"`
	Wireless         bool   `json:"wireless"`
	ANC              bool   `json:"anc"`
	BatteryLifeHours *int   `json:"battery_life_hours"`
}

func newAudioDeviceView(a *listing.AudioDevice) AudioDeviceView {
	return AudioDeviceView{
		listingView:      baseView(a.CategorySlug(), &a.Base),
		Kind:             a.Kind,
		Wireless:         a.Wireless,
		ANC:              a.ANC,
		BatteryLifeHours: a.BatteryLifeHours,
	}
}

// NewAudioDeviceListingHandler serves the audio category
func NewAudioDeviceListingHandler(service *listingapp.Service[listing.AudioDevice, *listing.AudioDevice]) ListingRoutes {
	return newListingHandler[listing.AudioDevice, *listing.AudioDevice, AudioDeviceRequest](service,
		func(a *listing.AudioDevice) any { return newAudioDeviceView(a) })
}

// --- storages ---

// StorageDeviceRequest is the write payload for the storages category
type StorageDeviceRequest struct {
	listingFields
	CapacityGB *int   `json:"capacity_gb"`
	Interface  string `json:"interface" binding:"max=40"`
	FormFactor string `json:"form_factor" binding:"max=40"`
}

func (r *StorageDeviceRequest) specs(s *listing.StorageDevice) {
	s.CapacityGB = r.CapacityGB
	s.Interface = r.Interface
	s.FormFactor = r.FormFactor
}

func (r *StorageDeviceRequest) build() (*listing.StorageDevice, error) {
	s, err := listing.NewStorageDevice(r.Name, r.Brand, toDecimal(r.PriceMin))
	if err != nil {
		return nil, err
	}
	r.decorate(&s.Base)
	r.specs(s)
	return s, nil
}

func (r *StorageDeviceRequest) apply(s *listing.StorageDevice) error {
	if err := s.UpdateBase(r.Name, r.Brand, toDecimal(r.PriceMin), r.priceMax(), r.SpecsText, r.ImageURL); err != nil {
		return err
	}
	r.specs(s)
	return nil
}

// StorageDeviceView is the response shape for the storages category
type StorageDeviceView struct {
	listingView
	CapacityGB *int   `json:"capacity_gb"`
	Interface  string `json:"interface"`
	FormFactor string `json:"form_factor"`
}

func newStorageDeviceView(s *listing.StorageDevice) StorageDeviceView {
	return StorageDeviceView{
		listingView: baseView(s.CategorySlug(), &s.Base),
		CapacityGB:  s.CapacityGB,
		Interface:   s.Interface,
		FormFactor:  s.FormFactor,
	}
}

// NewStorageDeviceListingHandler serves the storages category
func NewStorageDeviceListingHandler(service *listingapp.Service[listing.StorageDevice, *listing.StorageDevice]) ListingRoutes {
	return newListingHandler[listing.StorageDevice, *listing.StorageDevice, StorageDeviceRequest](service,
		func(s *listing.StorageDevice) any { return newStorageDeviceView(s) })
}

// --- accessories ---

// MobileAccessoryRequest is the write payload for the accessories category
type MobileAccessoryRequest struct {
	listingFields
	Kind string `json:"kind" binding:"max=20"`
}

func (r *MobileAccessoryRequest) build() (*listing.MobileAccessory, error) {
	m, err := listing.NewMobileAccessory(r.Name, r.Brand, r.Kind, toDecimal(r.PriceMin))
	if err != nil {
		return nil, err
	}
	r.decorate(&m.Base)
	return m, nil
}

func (r *MobileAccessoryRequest) apply(m *listing.MobileAccessory) error {
	if err := m.UpdateBase(r.Name, r.Brand, toDecimal(r.PriceMin), r.priceMax(), r.SpecsText, r.ImageURL); err != nil {
		return err
	}
	if r.Kind != "" {
		m.Kind = r.Kind
	}
	return nil
}

// MobileAccessoryView is the response shape for the accessories category
type MobileAccessoryView struct {
	listingView
	Kind string `json:"kind"`
}

func newMobileAccessoryView(m *listing.MobileAccessory) MobileAccessoryView {
	return MobileAccessoryView{
		listingView: baseView(m.CategorySlug(), &m.Base),
		Kind:        m.Kind,
	}
}

// NewMobileAccessoryListingHandler serves the accessories category
func NewMobileAccessoryListingHandler(service *listingapp.Service[listing.MobileAccessory, *listing.MobileAccessory]) ListingRoutes {
	return newListingHandler[listing.MobileAccessory, *listing.MobileAccessory, MobileAccessoryRequest](service,
		func(m *listing.MobileAccessory) any { return newMobileAccessoryView(m) })
}

// --- mkopa ---

// FinancedItemRequest is the write payload for the hire-purchase category
type FinancedItemRequest struct {
	listingFields
	Kind       string  `json:"kind" binding:"max=20"`
	DepositKES float64 `json:"deposit_kes" binding:"min=0"`
	WeeklyKES  float64 `json:"weekly_kes" binding:"min=0"`
	TermWeeks  int     `json:"term_weeks" binding:"min=0"`
}

func (r *FinancedItemRequest) terms(f *listing.FinancedItem) {
	f.DepositKES = toDecimal(r.DepositKES)
	f.WeeklyKES = toDecimal(r.WeeklyKES)
	f.TermWeeks = r.TermWeeks
}

func (r *FinancedItemRequest) build() (*listing.FinancedItem, error) {
	f, err := listing.NewFinancedItem(r.Name, r.Brand, r.Kind, toDecimal(r.PriceMin))
	if err != nil {
		return nil, err
	}
	r.decorate(&f.Base)
	r.terms(f)
	return f, nil
}

func (r *FinancedItemRequest) apply(f *listing.FinancedItem) error {
	if err := f.UpdateBase(r.Name, r.Brand, toDecimal(r.PriceMin), r.priceMax(), r.SpecsText, r.ImageURL); err != nil {
		return err
	}
	if r.Kind != "" {
		f.Kind = r.Kind
	}
	r.terms(f)
	return nil
}

// FinancedItemView is the response shape for the hire-purchase category
type FinancedItemView struct {
	listingView
	Kind       string `json:"kind"`
	DepositKES string `json:"deposit_kes"`
	WeeklyKES  string `json:"weekly_kes"`
	TermWeeks  int    `json:"term_weeks"`
}

func newFinancedItemView(f *listing.FinancedItem) FinancedItemView {
	return FinancedItemView{
		listingView: baseView(f.CategorySlug(), &f.Base),
		Kind:        f.Kind,
		DepositKES:  f.DepositKES.StringFixed(2),
		WeeklyKES:   f.WeeklyKES.StringFixed(2),
		TermWeeks:   f.TermWeeks,
	}
}

// NewFinancedItemListingHandler serves the mkopa category
func NewFinancedItemListingHandler(service *listingapp.Service[listing.FinancedItem, *listing.FinancedItem]) ListingRoutes {
	return newListingHandler[listing.FinancedItem, *listing.FinancedItem, FinancedItemRequest](service,
		func(f *listing.FinancedItem) any { return newFinancedItemView(f) })
}

// --- budget smartphones ---

// BudgetSmartphoneRequest is the write payload for the budget smartphones category
type BudgetSmartphoneRequest struct {
	listingFields
	Badge string `json:"badge" binding:"max=24"`
}

func (r *BudgetSmartphoneRequest) build() (*listing.BudgetSmartphone, error) {
	b, err := listing.NewBudgetSmartphone(r.Name, r.Brand, toDecimal(r.PriceMin))
	if err != nil {
		return nil, err
	}
	r.decorate(&b.Base)
	b.Badge = r.Badge
	return b, nil
}

func (r *BudgetSmartphoneRequest) apply(b *listing.BudgetSmartphone) error {
	if err := b.UpdateBase(r.Name, r.Brand, toDecimal(r.PriceMin), r.priceMax(), r.SpecsText, r.ImageURL); err != nil {
		return err
	}
	b.Badge = r.Badge
	return nil
}

// BudgetSmartphoneView is the response shape for the budget smartphones category
type BudgetSmartphoneView struct {
	listingView
	Badge string `json:"badge"`
}

func newBudgetSmartphoneView(b *listing.BudgetSmartphone) BudgetSmartphoneView {
	return BudgetSmartphoneView{
		listingView: baseView(b.CategorySlug(), &b.Base),
		Badge:       b.Badge,
	}
}

// NewBudgetSmartphoneListingHandler serves the budget-smartphones category
func NewBudgetSmartphoneListingHandler(service *listingapp.Service[listing.BudgetSmartphone, *listing.BudgetSmartphone]) ListingRoutes {
	return newListingHandler[listing.BudgetSmartphone, *listing.BudgetSmartphone, BudgetSmartphoneRequest](service,
		func(b *listing.BudgetSmartphone) any { return newBudgetSmartphoneView(b) })
}

// --- dial phones ---

// FeaturePhoneDealRequest is the write payload for the dialphones category
type FeaturePhoneDealRequest struct {
	listingFields
	Badge string `json:"badge" binding:"max=50"`
}

func (r *FeaturePhoneDealRequest) build() (*listing.FeaturePhoneDeal, error) {
	f, err := listing.NewFeaturePhoneDeal(r.Name, r.Brand, toDecimal(r.PriceMin))
	if err != nil {
		return nil, err
	}
	r.decorate(&f.Base)
	f.Badge = r.Badge
	return f, nil
}

func (r *FeaturePhoneDealRequest) apply(f *listing.FeaturePhoneDeal) error {
	if err := f.UpdateBase(r.Name, r.Brand, toDecimal(r.PriceMin), r.priceMax(), r.SpecsText, r.ImageURL); err != nil {
		return err
	}
	f.Badge = r.Badge
	return nil
}

// FeaturePhoneDealView is the response shape for the dialphones category
type FeaturePhoneDealView struct {
	listingView
	Badge string `json:"badge"`
}

func newFeaturePhoneDealView(f *listing.FeaturePhoneDeal) FeaturePhoneDealView {
	return FeaturePhoneDealView{
		listingView: baseView(f.CategorySlug(), &f.Base),
		Badge:       f.Badge,
	}
}

// NewFeaturePhoneDealListingHandler serves the dialphones category
func NewFeaturePhoneDealListingHandler(service *listingapp.Service[listing.FeaturePhoneDeal, *listing.FeaturePhoneDeal]) ListingRoutes {
	return newListingHandler[listing.FeaturePhoneDeal, *listing.FeaturePhoneDeal, FeaturePhoneDealRequest](service,
		func(f *listing.FeaturePhoneDeal) any { return newFeaturePhoneDealView(f) })
}

// --- offers ---

// LatestOfferRequest is the write payload for the offers category
type LatestOfferRequest struct {
	listingFields
	Kind     string   `json:"kind" binding:"max=24"`
	OldPrice *float64 `json:"old_price"`
	Labels   []string `json:"labels" binding:"max=8,dive,max=20"`
}

func (r *LatestOfferRequest) card(o *listing.LatestOffer) {
	if r.OldPrice != nil {
		o.OldPrice = toDecimalPtr(*r.OldPrice)
	} else {
		o.OldPrice = nil
	}
	o.LabelsCSV = strings.Join(r.Labels, ",")
}

func (r *LatestOfferRequest) build() (*listing.LatestOffer, error) {
	o, err := listing.NewLatestOffer(r.Name, r.Brand, r.Kind, toDecimal(r.PriceMin))
	if err != nil {
		return nil, err
	}
	r.decorate(&o.Base)
	r.card(o)
	return o, nil
}

func (r *LatestOfferRequest) apply(o *listing.LatestOffer) error {
	if err := o.UpdateBase(r.Name, r.Brand, toDecimal(r.PriceMin), r.priceMax(), r.SpecsText, r.ImageURL); err != nil {
		return err
	}
	if r.Kind != "" {
		o.Kind = r.Kind
	}
	r.card(o)
	return nil
}

// LatestOfferView is the response shape for the offers category
type LatestOfferView struct {
	listingView
	Kind     string   `json:"kind"`
	OldPrice *string  `json:"old_price"`
	Labels   []string `json:"labels"`
}

func newLatestOfferView(o *listing.LatestOffer) LatestOfferView {
	view := LatestOfferView{
		listingView: baseView(o.CategorySlug(), &o.Base),
		Kind:        o.Kind,
		Labels:      o.Labels(),
	}
	if o.OldPrice != nil {
		s := o.OldPrice.StringFixed(2)
		view.OldPrice = &s
	}
	return view
}

// NewLatestOfferListingHandler serves the offers category
func NewLatestOfferListingHandler(service *listingapp.Service[listing.LatestOffer, *listing.LatestOffer]) ListingRoutes {
	return newListingHandler[listing.LatestOffer, *listing.LatestOffer, LatestOfferRequest](service,
		func(o *listing.LatestOffer) any { return newLatestOfferView(o) })
}

// --- new iphones ---

// NewIphoneRequest is the write payload for the flagship iPhones
// category. Brand is implicit; the card shows a single price with an
// optional strikethrough old price.
type NewIphoneRequest struct {
	Name           string   `json:"name" binding:"required,max=160"`
	Price          float64  `json:"price" binding:"min=0"`
	OldPrice       *float64 `json:"old_price"`
	Badge          string   `json:"badge" binding:"max=8"`
	SpecsText      string   `json:"specs" binding:"max=255"`
	ImageURL       string   `json:"image" binding:"max=500"`
	BannerImageURL string   `json:"banner_image" binding:"max=500"`
}

func (r *NewIphoneRequest) card(n *listing.NewIphone) {
	if r.OldPrice != nil {
		n.OldPrice = toDecimalPtr(*r.OldPrice)
	} else {
		n.OldPrice = nil
	}
	if r.Badge != "" {
		n.Badge = r.Badge
	}
	n.BannerImageURL = r.BannerImageURL
}

func (r *NewIphoneRequest) build() (*listing.NewIphone, error) {
	n, err := listing.NewNewIphone(r.Name, toDecimal(r.Price))
	if err != nil {
		return nil, err
	}
	n.SpecsText = r.SpecsText
	n.ImageURL = r.ImageURL
	r.card(n)
	return n, nil
}

func (r *NewIphoneRequest) apply(n *listing.NewIphone) error {
	if err := n.UpdateBase(r.Name, "", toDecimal(r.Price), nil, r.SpecsText, r.ImageURL); err != nil {
		return err
	}
	r.card(n)
	return nil
}

// NewIphoneView is the response shape for the new-iphones category
type NewIphoneView struct {
	listingView
	OldPrice       *string `json:"old_price"`
	Badge          string  `json:"badge"`
	BannerImageURL string  `json:"banner_image"`
}

func newNewIphoneView(n *listing.NewIphone) NewIphoneView {
	view := NewIphoneView{
		listingView:    baseView(n.CategorySlug(), &n.Base),
		Badge:          n.Badge,
		BannerImageURL: n.BannerImageURL,
	}
	if n.OldPrice != nil {
		s := n.OldPrice.StringFixed(2)
		view.OldPrice = &s
	}
	return view
}

// NewNewIphoneListingHandler serves the new-iphones category
func NewNewIphoneListingHandler(service *listingapp.Service[listing.NewIphone, *listing.NewIphone]) ListingRoutes {
	return newListingHandler[listing.NewIphone, *listing.NewIphone, NewIphoneRequest](service,
		func(n *listing.NewIphone) any { return newNewIphoneView(n) })
}

// --- laptops ---

// LaptopRequest is the write payload for the laptops category
type LaptopRequest struct {
	listingFields
	RAMGB         *int     `json:"ram_gb"`
	StorageGB     *int     `json:"storage_gb"`
	DisplayInches *float64 `json:"display_inches"`
	DisplayType   string   `json:"display_type" binding:"max=40"`
}

func (r *LaptopRequest) specs(l *listing.Laptop) {
	l.RAMGB = r.RAMGB
	l.StorageGB = r.StorageGB
	if r.DisplayInches != nil {
		l.DisplayInches = toDecimalPtr(*r.DisplayInches)
	} else {
		l.DisplayInches = nil
	}
	l.DisplayType = r.DisplayType
}

func (r *LaptopRequest) build() (*listing.Laptop, error) {
	l, err := listing.NewLaptop(r.Name, r.Brand, toDecimal(r.PriceMin))
	if err != nil {
		return nil, err
	}
	r.decorate(&l.Base)
	r.specs(l)
	return l, nil
}

func (r *LaptopRequest) apply(l *listing.Laptop) error {
	if err := l.UpdateBase(r.Name, r.Brand, toDecimal(r.PriceMin), r.priceMax(), r.SpecsText, r.ImageURL); err != nil {
		return err
	}
	r.specs(l)
	return nil
}

// LaptopView is the response shape for the laptops category
type LaptopView struct {
	listingView
	RAMGB         *int    `json:"ram_gb"`
	StorageGB     *int    `json:"storage_gb"`
	DisplayInches *string `json:"display_inches"`
	DisplayType   string  `json:"display_type"`
}

func newLaptopView(l *listing.Laptop) LaptopView {
	return LaptopView{
		listingView:   baseView(l.CategorySlug(), &l.Base),
		RAMGB:         l.RAMGB,
		StorageGB:     l.StorageGB,
		DisplayInches: decimalString(l.DisplayInches),
		DisplayType:   l.DisplayType,
	}
}

// NewLaptopListingHandler serves the laptops category
func NewLaptopListingHandler(service *listingapp.Service[listing.Laptop, *listing.Laptop]) ListingRoutes {
	return newListingHandler[listing.Laptop, *listing.Laptop, LaptopRequest](service,
		func(l *listing.Laptop) any { return newLaptopView(l) })
}
