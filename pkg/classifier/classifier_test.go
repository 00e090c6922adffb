package classifier

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Long enough to stay above the short-content deletion threshold without
// containing any rule keyword.
var neutralPadding = strings.Repeat("условия обслуживания клиентов описаны ниже. ", 5)

func TestClassify_Deterministic(t *testing.T) {
	doc := Document{
		ID:          "doc-1",
		Title:       "Правила КАСКО",
		CompanyCode: "SOGAZ",
		ProductCode: "AUTO",
	}
	content := "Документ устарел. Условия страхования Ингосстрах по программе ДМС. " + neutralPadding

	first := Classify(doc, content)
	for i := 0; i < 5; i++ {
		again := Classify(doc, content)
		assert.Equal(t, first, again, "repeated classification must be identical")
	}
}

func TestClassify_Obsolescence(t *testing.T) {
	doc := Document{ID: "1", Title: "Условия страхования", CompanyCode: "SOGAZ", ProductCode: "AUTO"}

	t.Run("marker in content", func(t *testing.T) {
		res := Classify(doc, "Внимание: документ устарел. Полис больше не оформляется. "+neutralPadding)
		assert.True(t, res.HasAction(ActionMarkObsolete))
		assert.Contains(t, res.Issues, "contains obsolescence keywords")
	})

	t.Run("marker in title", func(t *testing.T) {
		titled := doc
		titled.Title = "Тарифы (устаревшая редакция)"
		res := Classify(titled, "Тарифы страхования. "+neutralPadding)
		assert.True(t, res.HasAction(ActionMarkObsolete))
	})

	t.Run("already flagged obsolete", func(t *testing.T) {
		flagged := doc
		flagged.IsObsolete = true
		res := Classify(flagged, "Документ устарел. Страхование. "+neutralPadding)
		assert.False(t, res.HasAction(ActionMarkObsolete), "already-obsolete documents are not re-flagged")
	})

	t.Run("no marker regardless of flag", func(t *testing.T) {
		for _, obsolete := range []bool{false, true} {
			d := doc
			d.IsObsolete = obsolete
			res := Classify(d, "Полис оформляется онлайн. "+neutralPadding)
			assert.False(t, res.HasAction(ActionMarkObsolete))
		}
	})
}

func TestClassify_Deletion(t *testing.T) {
	doc := Document{ID: "2", Title: "Памятка", CompanyCode: "RESO", ProductCode: "HEALTH"}

	t.Run("internal marker", func(t *testing.T) {
		res := Classify(doc, "Внутренний документ, не для клиентов. Полис ДМС. "+neutralPadding)
		assert.True(t, res.HasAction(ActionDelete))
		assert.Contains(t, res.Issues, "not relevant to an insurance service")
	})

	t.Run("internal marker in title", func(t *testing.T) {
		titled := doc
		titled.Title = "Черновик памятки"
		res := Classify(titled, "Страхование здоровья. "+neutralPadding)
		assert.True(t, res.HasAction(ActionDelete))
	})

	t.Run("short and off-domain", func(t *testing.T) {
		res := Classify(doc, "Расписание работы офиса.")
		assert.True(t, res.HasAction(ActionDelete))
	})

	t.Run("long relevant content is kept", func(t *testing.T) {
		res := Classify(doc, "Программа ДМС покрывает амбулаторное лечение. "+neutralPadding)
		assert.False(t, res.HasAction(ActionDelete))
	})

	t.Run("short but on-domain content is kept", func(t *testing.T) {
		res := Classify(doc, "Тарифы ДМС.")
		assert.False(t, res.HasAction(ActionDelete))
	})
}

func TestClassify_CompanyMismatch(t *testing.T) {
	t.Run("reso variant suggests RESO", func(t *testing.T) {
		doc := Document{ID: "3", Title: "Условия", CompanyCode: "SOGAZ", ProductCode: "AUTO"}
		res := Classify(doc, "ресо-гарантия")
		require.True(t, res.HasAction(ActionFixCompany))
		assert.Contains(t, res.Issues, "wrong company: SOGAZ -> RESO")
	})

	t.Run("own company is never suggested", func(t *testing.T) {
		doc := Document{ID: "4", Title: "Условия", CompanyCode: "RESO", ProductCode: "AUTO"}
		res := Classify(doc, "Полис РЕСО-Гарантия, условия страхования. "+neutralPadding)
		assert.False(t, res.HasAction(ActionFixCompany))
	})

	t.Run("first match in table order wins", func(t *testing.T) {
		doc := Document{ID: "5", Title: "Условия", CompanyCode: "SOGAZ", ProductCode: "AUTO"}
		// Both INGOSSTRAKH and ROSGOSSTRAKH are mentioned; INGOSSTRAKH is
		// declared earlier, so it is the suggestion every time.
		content := "Сравнение: Росгосстрах и Ингосстрах. Страхование. " + neutralPadding
		for i := 0; i < 5; i++ {
			res := Classify(doc, content)
			require.True(t, res.HasAction(ActionFixCompany))
			assert.Contains(t, res.Issues, "wrong company: SOGAZ -> INGOSSTRAKH")
		}
	})

	t.Run("unknown current code still gets a suggestion", func(t *testing.T) {
		doc := Document{ID: "6", Title: "Условия", CompanyCode: "ALFA", ProductCode: "AUTO"}
		res := Classify(doc, "Полис СОГАЗ, страхование. "+neutralPadding)
		require.True(t, res.HasAction(ActionFixCompany))
		assert.Contains(t, res.Issues, "wrong company: ALFA -> SOGAZ")
	})
}

func TestClassify_ProductMismatch(t *testing.T) {
	doc := Document{ID: "7", Title: "Условия", CompanyCode: "SOGAZ", ProductCode: "PROPERTY"}
	res := Classify(doc, "Полис ОСАГО оформляется на автомобиль. Страхование. "+neutralPadding)
	require.True(t, res.HasAction(ActionFixProduct))
	assert.Contains(t, res.Issues, "wrong product: PROPERTY -> AUTO")

	own := Document{ID: "8", Title: "Условия", CompanyCode: "SOGAZ", ProductCode: "AUTO"}
	assert.False(t, Classify(own, "Полис ОСАГО, страхование. "+neutralPadding).HasAction(ActionFixProduct))
}

func TestClassify_EmptyContent(t *testing.T) {
	doc := Document{ID: "9", Title: "Памятка", CompanyCode: "SOGAZ", ProductCode: "AUTO"}
	res := Classify(doc, "")

	assert.Equal(t, []Action{ActionDelete}, res.Actions)
	assert.Equal(t, []string{"not relevant to an insurance service"}, res.Issues)
}

func TestClassify_MultipleActionsInRuleOrder(t *testing.T) {
	doc := Document{ID: "10", Title: "Условия", CompanyCode: "SOGAZ", ProductCode: "LIFE"}
	content := "Документ устарел, вышла новая версия условий страхования Ингосстрах. " + neutralPadding

	res := Classify(doc, content)

	require.Equal(t, []Action{ActionMarkObsolete, ActionFixCompany}, res.Actions)
	require.Len(t, res.Issues, 2)
	assert.Equal(t, "contains obsolescence keywords", res.Issues[0])
	assert.Equal(t, "wrong company: SOGAZ -> INGOSSTRAKH", res.Issues[1])
}

func TestClassify_CopiesDocumentFields(t *testing.T) {
	doc := Document{
		ID:          "11",
		Title:       "Правила",
		CompanyCode: "VSK",
		ProductCode: "TRAVEL",
		IsApproved:  true,
		IsObsolete:  true,
	}
	res := Classify(doc, "Страхование путешествующих. "+neutralPadding)

	assert.Equal(t, doc.ID, res.ID)
	assert.Equal(t, doc.Title, res.Title)
	assert.Equal(t, doc.CompanyCode, res.CompanyCode)
	assert.Equal(t, doc.ProductCode, res.ProductCode)
	assert.Equal(t, doc.IsApproved, res.IsApproved)
	assert.Equal(t, doc.IsObsolete, res.IsObsolete)
}
