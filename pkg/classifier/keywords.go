package classifier

// Static keyword tables for the classification rules. The KB corpus is
// Russian, so the markers are Russian stems matched by plain lowercase
// substring containment (no stemming or normalization).

// codeKeywords pairs a company or product code with its lowercase name
// variants. Kept as a slice, not a map: mismatch suggestions take the first
// matching entry, so iteration order must be declaration order.
type codeKeywords struct {
	Code     string
	Keywords []string
}

// Phrases meaning the document text declares itself outdated or superseded.
var obsolescenceMarkers = []string{
	"устарел",
	"устаревш",
	"не действует",
	"утратил силу",
	"отменен",
	"отменён",
	"заменен",
	"заменён",
	"вышла новая версия",
	"новая редакция",
	"обновлен",
	"обновлён",
}

// Phrases marking internal, technical or temporary documents.
var internalDocMarkers = []string{
	"внутренний документ",
	"служебная информация",
	"для служебного пользования",
	"не для клиентов",
	"черновик",
	"тестовый документ",
	"временный файл",
}

// Insurance-domain vocabulary. A document mentioning none of these is not
// something the chatbot should be answering from.
var insuranceMarkers = []string{
	"страхов",
	"полис",
	"покрытие",
	"премия",
	"тариф",
	"риск",
	"выплат",
	"франшиза",
	"ущерб",
	"возмещен",
	"каско",
	"осаго",
	"дмс",
}

var companyKeywords = []codeKeywords{
	{Code: "SOGAZ", Keywords: []string{"согаз"}},
	{Code: "INGOSSTRAKH", Keywords: []string{"ингосстрах"}},
	{Code: "RESO", Keywords: []string{"ресо", "ресо-гарантия"}},
	{Code: "VSK", Keywords: []string{"вск", "военно-страховая компания"}},
	{Code: "ROSGOSSTRAKH", Keywords: []string{"росгосстрах", "ргс"}},
}

var productKeywords = []codeKeywords{
	{Code: "AUTO", Keywords: []string{"каско", "осаго", "автострахов", "автомобил"}},
	{Code: "PROPERTY", Keywords: []string{"имуществ", "недвижимост", "квартир", "ипотечн"}},
	{Code: "HEALTH", Keywords: []string{"дмс", "медицинск", "здоровь"}},
	{Code: "LIFE", Keywords: []string{"страхование жизни", "накопительн", "нсж", "исж"}},
	{Code: "TRAVEL", Keywords: []string{"путешеств", "выезжающ", "туристическ"}},
	{Code: "ACCIDENT", Keywords: []string{"несчастн", "травм"}},
}
