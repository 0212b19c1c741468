package tripay

// Payment channel codes accepted at checkout. Tripay knows more channels;
// these are the ones the storefront exposes.
var PaymentMethods = []string{
	"BRIVA",
	"BCAVA",
	"BNIVA",
	"MANDIRIVA",
	"PERMATAVA",
	"ALFAMART",
	"INDOMARET",
	"OVO",
	"DANA",
	"SHOPEEPAY",
	"QRIS",
}

func ValidMethod(code string) bool {
	for _, m := range PaymentMethods {
		if m == code {
			return true
		}
	}
	return false
}
