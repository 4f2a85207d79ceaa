package domain

// Category es un mini game del quiz: agrupa preguntas y las carreras que evalua.
type Category struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Majors      []Major `json:"majors"`
}

// Related reports whether m is one of the majors the category primarily probes.
func (c Category) Related(m Major) bool {
	for _, r := range c.Majors {
		if r == m {
			return true
		}
	}
	return false
}

// defaultCategories replica la configuracion de mini games del juego en vivo.
var defaultCategories = []Category{
	{
		ID:          "logic",
		Name:        "Tư duy & Logic",
		Description: "Đánh giá tư duy logic, khả năng phân tích và sự kiên nhẫn.",
		Majors:      []Major{MajorCNTT, MajorAI},
	},
	{
		ID:          "creative",
		Name:        "Sáng tạo & Thẩm mỹ",
		Description: "Đánh giá sự sáng tạo, cảm nhận hình ảnh và tư duy thiết kế.",
		Majors:      []Major{MajorTKDH, MajorMKT},
	},
	{
		ID:          "business",
		Name:        "Giao tiếp & Kinh doanh",
		Description: "Đánh giá khả năng giao tiếp, thuyết phục và tư duy kinh doanh.",
		Majors:      []Major{MajorMKT, MajorNNA},
	},
	{
		ID:          "language",
		Name:        "Ngôn ngữ & Hội nhập",
		Description: "Đánh giá khả năng ngoại ngữ và tư duy toàn cầu.",
		Majors:      []Major{MajorNNA, MajorMKT},
	},
}

// DefaultCategories returns a copy of the built-in category catalog in play order.
func DefaultCategories() []Category {
	out := make([]Category, len(defaultCategories))
	for i, c := range defaultCategories {
		c.Majors = append([]Major(nil), c.Majors...)
		out[i] = c
	}
	return out
}

// LookupCategory busca una categoria del catalogo por id.
func LookupCategory(id string) (Category, bool) {
	for _, c := range DefaultCategories() {
		if c.ID == id {
			return c, true
		}
	}
	return Category{}, false
}
