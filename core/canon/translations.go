package canon

// builtinTranslations lists the editions shipped with the registry and the
// language their book titles should be rendered in.
var builtinTranslations = map[string]Language{
	"RST": LangRU,
	"NRT": LangRU,
	"KTB": LangKZ,
	"KYB": LangKY,
}

// ktbNewTestamentIDs holds KTB's deviating New Testament numbering: the
// General Epistles (JAS-JUD) precede the Pauline Epistles (ROM-HEB) in the
// KTB dataset, so their book IDs differ from the standard Protestant order.
var ktbNewTestamentIDs = map[Code]int{
	"JAS": 45, "1PE": 46, "2PE": 47, "1JN": 48, "2JN": 49, "3JN": 50, "JUD": 51,
	"ROM": 52, "1CO": 53, "2CO": 54, "GAL": 55, "EPH": 56, "PHP": 57, "COL": 58,
	"1TH": 59, "2TH": 60, "1TI": 61, "2TI": 62, "TIT": 63, "PHM": 64, "HEB": 65,
	"REV": 66,
}

// translationBookIDs builds the code→book-ID map for a translation.
// RST, NRT and KYB follow the standard Protestant order, where the book ID
// equals the canonical ordinal. KTB overrides the NT epistle block.
func translationBookIDs(translation string) map[Code]int {
	ids := make(map[Code]int, canonicalBookCount)
	for i := range canonicalBooks {
		b := &canonicalBooks[i]
		ids[b.Code] = b.Ordinal
	}

	if translation == "KTB" {
		for code, id := range ktbNewTestamentIDs {
			ids[code] = id
		}
	}

	return ids
}
