// Package locale provides the user facing strings of a cutlist in the
// supported languages.
package locale

import (
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

// Message identifiers.
const (
	NoLeafInSelection    = "NoLeafInSelection"
	NoLeafInScene        = "NoLeafInScene"
	UndefinedMaterial    = "UndefinedMaterial"
	NonStandardThickness = "NonStandardThickness"
	HeaderNumber         = "HeaderNumber"
	HeaderName           = "HeaderName"
	HeaderLength         = "HeaderLength"
	HeaderWidth          = "HeaderWidth"
	HeaderThickness      = "HeaderThickness"
	HeaderCount          = "HeaderCount"
	HeaderMaterial       = "HeaderMaterial"
	HeaderRawSize        = "HeaderRawSize"
	CutlistTitle         = "CutlistTitle"
	SummaryTitle         = "SummaryTitle"
)

var english = []*i18n.Message{
	{ID: NoLeafInSelection, Other: "No component instance was found in your selection"},
	{ID: NoLeafInScene, Other: "No component instance was found in your scene"},
	{ID: UndefinedMaterial, Other: "[Undefined material]"},
	{ID: NonStandardThickness, Other: "not a standard thickness"},
	{ID: HeaderNumber, Other: "No."},
	{ID: HeaderName, Other: "Name"},
	{ID: HeaderLength, Other: "Length"},
	{ID: HeaderWidth, Other: "Width"},
	{ID: HeaderThickness, Other: "Thickness"},
	{ID: HeaderCount, Other: "Qty"},
	{ID: HeaderMaterial, Other: "Material"},
	{ID: HeaderRawSize, Other: "Raw size"},
	{ID: CutlistTitle, Other: "Cutlist"},
	{ID: SummaryTitle, Other: "Summary"},
}

var french = []*i18n.Message{
	{ID: NoLeafInSelection, Other: "Aucune instance de composant n'a été détectée dans votre sélection"},
	{ID: NoLeafInScene, Other: "Aucune instance de composant n'a été détectée sur votre scène"},
	{ID: UndefinedMaterial, Other: "[Matière non définie]"},
	{ID: NonStandardThickness, Other: "épaisseur non standard"},
	{ID: HeaderNumber, Other: "N°"},
	{ID: HeaderName, Other: "Nom"},
	{ID: HeaderLength, Other: "Longueur"},
	{ID: HeaderWidth, Other: "Largeur"},
	{ID: HeaderThickness, Other: "Épaisseur"},
	{ID: HeaderCount, Other: "Qté"},
	{ID: HeaderMaterial, Other: "Matière"},
	{ID: HeaderRawSize, Other: "Brut"},
	{ID: CutlistTitle, Other: "Fiche de débit"},
	{ID: SummaryTitle, Other: "Récapitulatif"},
}

var bundle = newBundle()

func newBundle() *i18n.Bundle {
	b := i18n.NewBundle(language.English)
	if err := b.AddMessages(language.English, english...); err != nil {
		panic(err)
	}
	if err := b.AddMessages(language.French, french...); err != nil {
		panic(err)
	}
	return b
}

// Languages lists the supported language tags.
func Languages() []string {
	tags := bundle.LanguageTags()
	out := make([]string, len(tags))
	for i, t := range tags {
		out[i] = t.String()
	}
	return out
}

// Localizer resolves message identifiers in one language, falling back to English.
type Localizer struct {
	loc *i18n.Localizer
}

// New creates a Localizer for lang ("en", "fr", "fr-CA", ...).
func New(lang string) *Localizer {
	return &Localizer{loc: i18n.NewLocalizer(bundle, lang, language.English.String())}
}

// Text returns the localized message for id, or id itself when it is unknown.
func (l *Localizer) Text(id string) string {
	msg, err := l.loc.Localize(&i18n.LocalizeConfig{MessageID: id})
	if err != nil {
		return id
	}
	return msg
}
