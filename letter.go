package loigen

import (
	"math"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Default values substituted for absent request fields.
const (
	defaultValue     = "TBD"
	defaultPurchaser = "REK Partners or 1057-9 E 15th LLC & 514 Olpp Ave LLC"
	defaultSigner    = "REK Partners"
	defaultOwner     = "Property Owner"
)

// dateLayout matches the US short date form used for the DATE default.
const dateLayout = "1/2/2006"

// Indentation in twips (1/20 point).
const (
	termSubIndent   = 1000 // indented sub-conditions under a term
	signatureIndent = 500  // signature block lines
)

// Font sizes in points.
const (
	titleFontSize    = 14
	propertyFontSize = 11
)

// letterTitle is the fixed document title.
const letterTitle = "Letter of Intent"

// moneyPrinter renders numbers with en-US thousands separators.
var moneyPrinter = message.NewPrinter(language.English)

// formatMoney renders an optional amount as "$1,234,567". Fractional
// amounts keep two decimals; an absent amount renders as "$TBD".
// Whole amounts outside int64 range take the decimal form rather than
// saturate on conversion.
func formatMoney(v *float64) string {
	if v == nil {
		return "$" + defaultValue
	}
	if *v == math.Trunc(*v) && math.Abs(*v) < math.MaxInt64 {
		return moneyPrinter.Sprintf("$%d", int64(*v))
	}
	return moneyPrinter.Sprintf("$%.2f", *v)
}

// fallback returns s, or def when s is empty.
func fallback(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

// Paragraph and run construction helpers.

func text(s string) Run { return Run{Text: s} }
func bold(s string) Run { return Run{Text: s, Bold: true} }

func para(runs ...Run) Paragraph { return Paragraph{Runs: runs} }
func spacer() Paragraph          { return Paragraph{} }

func sub(s string) Paragraph {
	return Paragraph{Runs: []Run{text(s)}, Indent: termSubIndent}
}

func signatureLine(runs ...Run) Paragraph {
	return Paragraph{Runs: runs, Indent: signatureIndent}
}

// term is one named entry of the fixed terms section. The label is
// bolded; body text is constant apart from the enumerated numeric
// substitutions; subs are fixed indented conditions.
type term struct {
	label string
	body  func(req LetterRequest) string
	subs  []string
}

// letterTerms is the fixed, ordered terms section of the letter. The
// legal text is a constant of the template; only the dollar amounts
// are substituted.
var letterTerms = []term{
	{
		label: "Price",
		body: func(req LetterRequest) string {
			return formatMoney(req.Price)
		},
	},
	{
		label: "Financing",
		body: func(req LetterRequest) string {
			return "Purchaser intends to obtain a loan of roughly " + formatMoney(req.Financing) +
				" commercial financing priced at prevailing interest rates."
		},
	},
	{
		label: "Earnest Money",
		body: func(req LetterRequest) string {
			return "Concurrently with full execution of a Purchase & Sale Agreement, Purchaser shall make " +
				"an earnest money deposit (\"The Initial Deposit\") with a mutually agreed upon escrow agent " +
				"in the amount of USD " + formatMoney(req.Earnest1) + " to be held in escrow and applied to " +
				"the purchase price at closing. On expiration of the Due Diligence, Purchaser will pay a " +
				"further " + formatMoney(req.Earnest2) + " deposit towards the purchase price and the " +
				"combined " + formatMoney(req.TotalEarnest) + " will be fully non-refundable."
		},
	},
	{
		label: "Due Diligence",
		body: func(LetterRequest) string {
			return "Purchaser shall have 45 calendar days due diligence period from the time of the " +
				"execution of a formal Purchase and Sale Agreement and receipt of relevant documents."
		},
		subs: []string{
			"Seller to provide all books and records within 3 business day of effective contract date, " +
				"including HOA resale certificates, property disclosures, 3 years of financial statements, " +
				"pending litigation, and all documentation related to sewage intrusion.",
		},
	},
	{
		label: "Title Contingency",
		body: func(LetterRequest) string {
			return "Seller shall be ready, willing and able to deliver free and clear title to the Property " +
				"at closing, subject to standard title exceptions acceptable to Purchaser."
		},
		subs: []string{
			"Purchaser to select title and escrow companies.",
		},
	},
	{
		label: "Appraisal Contingency",
		body: func(LetterRequest) string {
			return "None"
		},
	},
	{
		label: "Buyer Contingency",
		body: func(LetterRequest) string {
			return "Purchaser's obligation to close is not contingent upon the sale of any other property " +
				"owned by Purchaser."
		},
	},
	{
		label: "Closing",
		body: func(LetterRequest) string {
			return "Closing shall occur within 30 calendar days following expiration of the Due Diligence " +
				"period, or sooner by mutual agreement of the parties."
		},
	},
	{
		label: "Closing Costs",
		body: func(LetterRequest) string {
			return "Each party shall pay its own customary closing costs. Escrow fees shall be split " +
				"equally between Purchaser and Seller."
		},
	},
	{
		label: "Purchase Contract",
		body: func(LetterRequest) string {
			return "Upon acceptance of this letter, Purchaser shall prepare a formal Purchase and Sale " +
				"Agreement incorporating the terms herein within 10 business days."
		},
	},
}

// BuildLetter maps a request to the fixed Letter of Intent block
// structure. It is pure and total: absent fields substitute defaults,
// and identical inputs with the same now produce identical output.
// The now parameter supplies the DATE default and allows injecting a
// fixed time for testing.
func BuildLetter(req LetterRequest, now time.Time) Letter {
	buyer := fallback(req.BuyerEntity, defaultPurchaser)
	signer := fallback(req.BuyerEntity, defaultSigner)
	owner := fallback(req.Owner, defaultOwner)
	acceptBy := fallback(req.AcceptBy, defaultValue)
	date := fallback(req.Today, now.Format(dateLayout))
	address := fallback(req.Address.Full, defaultValue)

	paragraphs := make([]Paragraph, 0, 64)
	add := func(ps ...Paragraph) {
		paragraphs = append(paragraphs, ps...)
	}

	// Title block.
	add(Paragraph{
		Runs:  []Run{{Text: letterTitle, Bold: true, Underline: true, Size: titleFontSize}},
		Align: AlignCenter,
	})
	add(spacer())

	// Metadata lines.
	add(para(bold("DATE: "), text(date)))
	add(para(bold("Purchaser: "), text(buyer)))
	add(Paragraph{Runs: []Run{{
		Text: "RE: " + address + " (\"the Property\")",
		Bold: true,
		Size: propertyFontSize,
	}}})
	add(spacer())

	// Intro paragraph.
	add(para(
		text("This "),
		bold("non-binding letter"),
		text(" represents Purchaser's intent to purchase the above captioned property (the \"Property\") "+
			"including the land and improvements on the following terms and conditions:"),
	))
	add(spacer())

	// Terms section.
	for i, t := range letterTerms {
		if i > 0 {
			add(spacer())
		}
		add(para(bold(t.label+": "), text(t.body(req))))
		for _, s := range t.subs {
			add(sub(s))
		}
	}

	// Closing paragraph.
	add(spacer())
	add(para(
		text("This letter of intent is "),
		bold("not intended"),
		text(" to create a binding agreement on the Seller to sell or the Purchaser to buy. The purpose "+
			"of this letter is to set forth the primary terms and conditions upon which to execute a "+
			"formal Purchase and Sale Agreement. All other terms and conditions shall be negotiated in "+
			"the formal Purchase and Sale Agreement. This letter of Intent is open for acceptance through "),
		bold(acceptBy),
		text("."),
	))

	// Signature block.
	add(spacer(), spacer())
	add(signatureLine(text("PURCHASER: " + signer)))
	add(spacer(), spacer())
	add(signatureLine(text("By: _____________________________________ Date:________________")))
	add(signatureLine(text("Name: ___________________________________")))
	add(spacer())
	add(para(Run{Text: "Agreed and Accepted", Bold: true, Italic: true, Underline: true}))
	add(spacer())
	add(signatureLine(text("SELLER: " + owner)))
	add(spacer(), spacer())
	add(signatureLine(text("By: _____________________________________ Date:________________")))
	add(signatureLine(text("Name: ___________________________________")))
	add(signatureLine(text("Title: __________________________________")))

	return Letter{
		Title:      letterTitle,
		Author:     signer,
		Paragraphs: paragraphs,
	}
}
