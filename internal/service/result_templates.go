package service

import "github.com/tuankiet247/OpenDayGame/internal/domain"

type majorTemplate struct {
	Reasoning string // %s = nombre del jugador
	Roadmap   string
	Careers   string
	Badges    []string
}

var majorTemplates = map[domain.Major]majorTemplate{
	domain.MajorCNTT: {
		Reasoning: "%s có tư duy logic sắc bén và thích giải quyết vấn đề bằng công nghệ. Kỹ thuật phần mềm là sân chơi hoàn hảo để bạn biến ý tưởng thành sản phẩm thật!",
		Roadmap:   "- Nắm chắc lập trình C và cấu trúc dữ liệu\n- Học Java/Web và làm dự án nhóm\n- Thực tập tại doanh nghiệp phần mềm",
		Careers:   "Software Engineer, DevOps Engineer, Business Analyst",
		Badges:    []string{"Future Tech Leader", "Bug Hunter"},
	},
	domain.MajorAI: {
		Reasoning: "%s thích phân tích, tò mò về dữ liệu và luôn hỏi \"tại sao\". Trí tuệ nhân tạo sẽ giúp bạn dạy máy móc suy nghĩ như chính bạn!",
		Roadmap:   "- Vững toán rời rạc, xác suất và Python\n- Học Machine Learning và Deep Learning\n- Tham gia dự án nghiên cứu hoặc cuộc thi AI",
		Careers:   "AI Engineer, Data Scientist, Machine Learning Researcher",
		Badges:    []string{"Logic Master", "Data Whisperer"},
	},
	domain.MajorTKDH: {
		Reasoning: "%s có con mắt thẩm mỹ và trí tưởng tượng bay xa. Thiết kế đồ họa và truyền thông đa phương tiện là nơi sự sáng tạo của bạn được bùng nổ!",
		Roadmap:   "- Làm quen Photoshop, Illustrator, Figma\n- Học nguyên lý thị giác và dựng video\n- Xây dựng portfolio cá nhân",
		Careers:   "Graphic Designer, UI/UX Designer, Motion Designer",
		Badges:    []string{"Design God", "Color Wizard"},
	},
	domain.MajorMKT: {
		Reasoning: "%s nhạy bén với xu hướng và biết cách thu hút mọi người. Digital Marketing và Quản trị kinh doanh sẽ giúp bạn biến ý tưởng thành chiến dịch triệu view!",
		Roadmap:   "- Học nền tảng marketing và hành vi khách hàng\n- Thực hành quảng cáo số và phân tích dữ liệu\n- Chạy chiến dịch thực tế cho dự án",
		Careers:   "Digital Marketer, Brand Manager, Growth Hacker",
		Badges:    []string{"Trend Setter", "Viral Maker"},
	},
	domain.MajorNNA: {
		Reasoning: "%s yêu ngôn ngữ và luôn muốn kết nối với thế giới. Nhóm ngành Ngôn ngữ Anh, Ngôn ngữ Nhật sẽ mở ra cánh cửa hội nhập toàn cầu cho bạn!",
		Roadmap:   "- Củng cố 4 kỹ năng nghe nói đọc viết\n- Học văn hóa và biên phiên dịch\n- Trao đổi sinh viên hoặc thực tập ở công ty quốc tế",
		Careers:   "Biên phiên dịch viên, Chuyên viên đối ngoại, Content Creator đa ngôn ngữ",
		Badges:    []string{"Global Citizen", "Polyglot"},
	},
}

var genericTemplate = majorTemplate{
	Reasoning: "%s có nhiều thế mạnh thú vị! Hãy tiếp tục trải nghiệm để tìm ra ngành học khiến bạn hứng thú nhất.",
	Roadmap:   "- Tìm hiểu các ngành học tại ĐH FPT\n- Tham gia workshop trải nghiệm\n- Trò chuyện với anh chị sinh viên",
	Careers:   "Dev, PM, BA",
	Badges:    []string{"Explorer"},
}

// templateFor devuelve la plantilla de la carrera o la generica si no se conoce.
func templateFor(m domain.Major) majorTemplate {
	if t, ok := majorTemplates[m]; ok {
		return t
	}
	return genericTemplate
}
