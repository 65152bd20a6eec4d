package patterns

// CuratedMerchant is one entry of the built-in merchant dataset: the
// canonical display name, the aliases and domains it appears under in
// messages, and the spending vertical it belongs to. The vertical feeds the
// categorizer's built-in keyword table.
type CuratedMerchant struct {
	Canonical string
	Aliases   []string
	Domains   []string
	Vertical  string
}

// Spending verticals used by the curated dataset and the category keyword
// table. These are plain tags, not host category IDs; the categorizer
// resolves them against the host's category names.
const (
	VerticalShopping      = "shopping"
	VerticalDining        = "dining"
	VerticalTransport     = "transport"
	VerticalEntertainment = "entertainment"
	VerticalGroceries     = "groceries"
	VerticalFuel          = "fuel"
	VerticalHealthcare    = "healthcare"
	VerticalUtilities     = "utilities"
	VerticalTelecom       = "telecom"
	VerticalTravel        = "travel"
)

// CuratedMerchants is the built-in merchant dataset. Alias and domain keys
// are matched case-insensitively after normalization.
var CuratedMerchants = []CuratedMerchant{
	{Canonical: "Amazon", Aliases: []string{"amazon", "amzn", "amazon pay"}, Domains: []string{"amazon.in", "amazon.com"}, Vertical: VerticalShopping},
	{Canonical: "Flipkart", Aliases: []string{"flipkart", "fkrt"}, Domains: []string{"flipkart.com"}, Vertical: VerticalShopping},
	{Canonical: "Myntra", Aliases: []string{"myntra"}, Domains: []string{"myntra.com"}, Vertical: VerticalShopping},
	{Canonical: "Swiggy", Aliases: []string{"swiggy", "swiggy instamart"}, Domains: []string{"swiggy.com", "swiggy.in"}, Vertical: VerticalDining},
	{Canonical: "Zomato", Aliases: []string{"zomato"}, Domains: []string{"zomato.com"}, Vertical: VerticalDining},
	{Canonical: "Dominos", Aliases: []string{"dominos", "domino's"}, Domains: []string{"dominos.co.in"}, Vertical: VerticalDining},
	{Canonical: "Uber", Aliases: []string{"uber", "uber india"}, Domains: []string{"uber.com"}, Vertical: VerticalTransport},
	{Canonical: "Ola", Aliases: []string{"ola", "ola cabs", "olacabs"}, Domains: []string{"olacabs.com"}, Vertical: VerticalTransport},
	{Canonical: "Rapido", Aliases: []string{"rapido"}, Domains: []string{"rapido.bike"}, Vertical: VerticalTransport},
	{Canonical: "IRCTC", Aliases: []string{"irctc", "indian railways"}, Domains: []string{"irctc.co.in"}, Vertical: VerticalTravel},
	{Canonical: "MakeMyTrip", Aliases: []string{"makemytrip", "mmt"}, Domains: []string{"makemytrip.com"}, Vertical: VerticalTravel},
	{Canonical: "Netflix", Aliases: []string{"netflix"}, Domains: []string{"netflix.com"}, Vertical: VerticalEntertainment},
	{Canonical: "Spotify", Aliases: []string{"spotify"}, Domains: []string{"spotify.com"}, Vertical: VerticalEntertainment},
	{Canonical: "BookMyShow", Aliases: []string{"bookmyshow", "bms"}, Domains: []string{"bookmyshow.com"}, Vertical: VerticalEntertainment},
	{Canonical: "BigBasket", Aliases: []string{"bigbasket", "big basket"}, Domains: []string{"bigbasket.com"}, Vertical: VerticalGroceries},
	{Canonical: "Blinkit", Aliases: []string{"blinkit", "grofers"}, Domains: []string{"blinkit.com"}, Vertical: VerticalGroceries},
	{Canonical: "DMart", Aliases: []string{"dmart", "d mart", "avenue supermarts"}, Domains: []string{"dmart.in"}, Vertical: VerticalGroceries},
	{Canonical: "Reliance Fresh", Aliases: []string{"reliance fresh", "reliance retail"}, Domains: nil, Vertical: VerticalGroceries},
	{Canonical: "Indian Oil", Aliases: []string{"indian oil", "indianoil", "iocl"}, Domains: nil, Vertical: VerticalFuel},
	{Canonical: "HPCL", Aliases: []string{"hpcl", "hp petrol"}, Domains: nil, Vertical: VerticalFuel},
	{Canonical: "BPCL", Aliases: []string{"bpcl", "bharat petroleum"}, Domains: nil, Vertical: VerticalFuel},
	{Canonical: "Apollo Pharmacy", Aliases: []string{"apollo pharmacy", "apollo"}, Domains: []string{"apollopharmacy.in"}, Vertical: VerticalHealthcare},
	{Canonical: "PharmEasy", Aliases: []string{"pharmeasy"}, Domains: []string{"pharmeasy.in"}, Vertical: VerticalHealthcare},
	{Canonical: "Jio", Aliases: []string{"jio", "reliance jio"}, Domains: []string{"jio.com"}, Vertical: VerticalTelecom},
	{Canonical: "Airtel", Aliases: []string{"airtel", "bharti airtel"}, Domains: []string{"airtel.in"}, Vertical: VerticalTelecom},
	{Canonical: "Vi", Aliases: []string{"vodafone idea", "vodafone"}, Domains: []string{"myvi.in"}, Vertical: VerticalTelecom},
	{Canonical: "Tata Power", Aliases: []string{"tata power"}, Domains: nil, Vertical: VerticalUtilities},
	{Canonical: "BESCOM", Aliases: []string{"bescom"}, Domains: nil, Vertical: VerticalUtilities},
}

// CategoryKeywordRule maps merchant-name keywords to a budget category and
// subcategory by name. Rules resolve against the host's reference data; a
// rule only fires when a matching active category exists.
type CategoryKeywordRule struct {
	Keywords        []string
	CategoryName    string
	SubcategoryName string
	BaseConfidence  float64
}

// MerchantKeywordRules is the merchant-name keyword table used by the
// categorizer's second strategy. Final confidence is the rule base scaled
// by the merchant match confidence.
var MerchantKeywordRules = []CategoryKeywordRule{
	{Keywords: []string{"amazon", "flipkart", "myntra", "mall", "bazaar"}, CategoryName: "shopping", SubcategoryName: "online", BaseConfidence: 0.85},
	{Keywords: []string{"swiggy", "zomato", "restaurant", "cafe", "pizza", "biryani"}, CategoryName: "food", SubcategoryName: "dining out", BaseConfidence: 0.85},
	{Keywords: []string{"uber", "ola", "rapido", "metro", "cab"}, CategoryName: "transport", SubcategoryName: "taxi", BaseConfidence: 0.85},
	{Keywords: []string{"netflix", "spotify", "bookmyshow", "cinema", "hotstar"}, CategoryName: "entertainment", SubcategoryName: "streaming", BaseConfidence: 0.85},
	{Keywords: []string{"bigbasket", "blinkit", "dmart", "grocery", "supermarket"}, CategoryName: "groceries", SubcategoryName: "supermarket", BaseConfidence: 0.85},
	{Keywords: []string{"petrol", "fuel", "iocl", "hpcl", "bpcl"}, CategoryName: "fuel", SubcategoryName: "petrol", BaseConfidence: 0.85},
	{Keywords: []string{"pharmacy", "hospital", "clinic", "apollo", "pharmeasy"}, CategoryName: "healthcare", SubcategoryName: "medicine", BaseConfidence: 0.85},
	{Keywords: []string{"electricity", "water", "gas", "bescom", "power"}, CategoryName: "utilities", SubcategoryName: "electricity", BaseConfidence: 0.85},
	{Keywords: []string{"jio", "airtel", "vodafone", "recharge", "broadband"}, CategoryName: "telecom", SubcategoryName: "mobile", BaseConfidence: 0.85},
}

// VerticalCategoryNames maps curated-dataset verticals to the host category
// names they should land in, used by the built-in vertical strategy at fixed
// confidence.
var VerticalCategoryNames = map[string][]string{
	VerticalShopping:      {"shopping"},
	VerticalDining:        {"food", "dining", "eating out"},
	VerticalTransport:     {"transport", "travel"},
	VerticalEntertainment: {"entertainment"},
	VerticalGroceries:     {"groceries", "grocery"},
	VerticalFuel:          {"fuel", "transport"},
	VerticalHealthcare:    {"healthcare", "health", "medical"},
	VerticalUtilities:     {"utilities", "bills"},
	VerticalTelecom:       {"telecom", "utilities", "bills"},
	VerticalTravel:        {"travel", "transport"},
}
