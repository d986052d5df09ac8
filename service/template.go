package service

import (
	"fmt"
	"strings"

	"github.com/emidigital/emi-crm/models"
)

// SenderProfile is the active operator's identity as interpolated into the
// generated email.
type SenderProfile struct {
	Name  string
	Role  string
	Email string
}

// templateVars is the resolved parameter set every variant interpolates.
// All defaults are applied before any variant runs, so a variant never has
// to deal with a missing field.
type templateVars struct {
	ContactName string
	Company     string
	Stage       string
	Channel     string
	SenderName  string
	SenderRole  string
}

// templateRule pairs a predicate with a variant builder. Rules are
// evaluated top to bottom and the first match wins; the ordering is the
// contract, not an implementation detail.
type templateRule struct {
	matches func(roleHint, industryHint string, followupNumber int) bool
	build   func(v templateVars) string
}

func roleContains(roleHint string, tokens ...string) bool {
	role := strings.ToLower(roleHint)
	for _, token := range tokens {
		if strings.Contains(role, token) {
			return true
		}
	}
	return false
}

func industryContains(industryHint string, tokens ...string) bool {
	industry := strings.ToLower(industryHint)
	for _, token := range tokens {
		if strings.Contains(industry, token) {
			return true
		}
	}
	return false
}

// Role rules match broad substrings on purpose: "it" hits words like
// "digital". The sales team prefers the occasional overly technical email
// over a missed personalization, so keep the tokens as they are.
var templateRules = []templateRule{
	{
		matches: func(role, _ string, _ int) bool { return roleContains(role, "ceo", "founder") },
		build:   leadershipVariant,
	},
	{
		matches: func(role, _ string, _ int) bool { return roleContains(role, "cfo", "finance") },
		build:   costEfficiencyVariant,
	},
	{
		matches: func(role, _ string, _ int) bool { return roleContains(role, "it", "tech", "engineer") },
		build:   technicalVariant,
	},
	{
		matches: func(_, industry string, _ int) bool { return industryContains(industry, "teknologi", "tech") },
		build:   technologyVariant,
	},
	{
		matches: func(_, industry string, _ int) bool {
			return industryContains(industry, "kesehatan", "hospital", "clinic")
		},
		build: healthcareVariant,
	},
	{
		matches: func(_, industry string, _ int) bool {
			return industryContains(industry, "skincare", "beauty", "cosmetic")
		},
		build: skincareVariant,
	},
	{
		matches: func(_, _ string, n int) bool { return n == 1 },
		build:   firstContactVariant,
	},
	{
		matches: func(_, _ string, n int) bool { return n == 2 },
		build:   valueAddVariant,
	},
	{
		matches: func(_, _ string, n int) bool { return n >= 3 },
		build:   finalOfferVariant,
	},
}

// SelectTemplate picks the outbound email body for a prospect. Role hints
// take precedence over industry hints, which take precedence over the
// follow-up count; anything else (including a follow-up number below one)
// gets the default variant. Pure: same inputs, same document.
func SelectTemplate(prospect models.Prospect, roleHint, industryHint string, followupNumber int, sender SenderProfile) string {
	vars := resolveVars(prospect, sender)

	for _, rule := range templateRules {
		if rule.matches(roleHint, industryHint, followupNumber) {
			return rule.build(vars)
		}
	}

	return defaultVariant(vars)
}

// resolveVars applies the documented defaults for missing optional fields.
func resolveVars(prospect models.Prospect, sender SenderProfile) templateVars {
	vars := templateVars{
		ContactName: prospect.ContactName,
		Company:     prospect.CompanyName,
		Stage:       prospect.NextStep,
		Channel:     prospect.ContactPhone,
		SenderName:  sender.Name,
		SenderRole:  sender.Role,
	}

	if vars.ContactName == "" {
		vars.ContactName = "Bapak/Ibu"
	}
	if vars.Company == "" {
		vars.Company = "Perusahaan"
	}
	if vars.Stage == "" && prospect.Status.IsValid() {
		vars.Stage = strings.ToLower(prospect.Status.Label())
	}
	if vars.Stage == "" {
		vars.Stage = "baru"
	}
	if vars.Channel == "" {
		vars.Channel = sender.Email
	}
	if vars.SenderName == "" {
		vars.SenderName = "EMI Marketing Team"
	}
	if vars.SenderRole == "" {
		vars.SenderRole = "Tim EMI"
	}

	return vars
}

// htmlDocument wraps a variant body with the shared document frame and
// closing footer.
func htmlDocument(v templateVars, subject, body string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html lang="id">
<head>
<meta charset="utf-8">
<title>%s</title>
<style>
body { font-family: Arial, Helvetica, sans-serif; color: #1f2933; line-height: 1.6; }
.container { max-width: 620px; margin: 0 auto; padding: 24px; }
.footer { margin-top: 32px; padding-top: 16px; border-top: 1px solid #d3d9e0; font-size: 13px; color: #52606d; }
</style>
</head>
<body>
<div class="container">
%s
<p>Apabila %s berkenan, kami dapat dihubungi melalui %s untuk menjadwalkan diskusi lebih lanjut.</p>
<p>Hormat kami,<br><strong>%s</strong><br>%s</p>
<div class="footer">
<p>EMI Digital Indonesia &mdash; solusi digitalisasi untuk bisnis yang sedang bertumbuh.</p>
<p>Email ini dikirim sehubungan dengan ketertarikan %s pada layanan kami. Balas email ini apabila tidak ingin menerima informasi berikutnya.</p>
</div>
</div>
</body>
</html>`, subject, body, v.ContactName, v.Channel, v.SenderName, v.SenderRole, v.Company)
}

func leadershipVariant(v templateVars) string {
	body := fmt.Sprintf(`<p>Yth. %s,</p>
<p>Sebagai pimpinan %s, kami memahami bahwa waktu Anda berharga, sehingga kami langsung pada intinya: perusahaan yang mendigitalisasi proses pemasarannya tumbuh lebih cepat dari kompetitornya.</p>
<p>Kami membantu para pengambil keputusan menyusun strategi digital yang terukur, mulai dari tahap %s hingga ekspansi, dengan laporan yang bisa langsung dibaca di tingkat direksi.</p>
<p>Kami ingin mengundang Anda dalam sesi diskusi strategis selama 30 menit, tanpa biaya dan tanpa komitmen.</p>`,
		v.ContactName, v.Company, v.Stage)
	return htmlDocument(v, "Strategi Pertumbuhan untuk "+v.Company, body)
}

func costEfficiencyVariant(v templateVars) string {
	body := fmt.Sprintf(`<p>Yth. %s,</p>
<p>Kami tahu setiap rupiah anggaran %s harus dapat dipertanggungjawabkan. Karena itu penawaran kami disusun berdasarkan efisiensi biaya yang terukur.</p>
<p>Klien kami rata-rata memangkas biaya akuisisi pelanggan hingga 40%% dalam dua kuartal pertama, dengan rincian biaya-manfaat yang transparan sejak tahap %s.</p>
<p>Kami dapat menyiapkan simulasi penghematan khusus untuk %s sebagai bahan pertimbangan.</p>`,
		v.ContactName, v.Company, v.Stage, v.Company)
	return htmlDocument(v, "Efisiensi Biaya Pemasaran "+v.Company, body)
}

func technicalVariant(v templateVars) string {
	body := fmt.Sprintf(`<p>Yth. %s,</p>
<p>Tim teknis %s tentu tidak ingin menambah satu sistem lagi yang tidak terintegrasi. Platform kami menyediakan REST API terdokumentasi, webhook, dan SSO, sehingga integrasi dengan sistem yang sudah berjalan dapat diselesaikan dalam hitungan hari.</p>
<p>Dari tahap %s, tim engineering kami siap mendampingi proses integrasi, termasuk sandbox untuk pengujian sebelum go-live.</p>
<p>Kami dapat mengirimkan dokumentasi teknis lengkap apabila diperlukan.</p>`,
		v.ContactName, v.Company, v.Stage)
	return htmlDocument(v, "Integrasi Teknis untuk "+v.Company, body)
}

func technologyVariant(v templateVars) string {
	body := fmt.Sprintf(`<p>Yth. %s,</p>
<p>Sebagai sesama pelaku industri teknologi, %s tentu paham bahwa kecepatan eksekusi menentukan segalanya. Kami membantu perusahaan teknologi menjangkau pasar baru tanpa membebani tim produk yang sudah sibuk.</p>
<p>Saat ini %s berada di tahap %s bersama kami, dan kami melihat peluang kolaborasi yang lebih jauh.</p>`,
		v.ContactName, v.Company, v.Company, v.Stage)
	return htmlDocument(v, "Kolaborasi Teknologi dengan "+v.Company, body)
}

func healthcareVariant(v templateVars) string {
	body := fmt.Sprintf(`<p>Yth. %s,</p>
<p>Industri kesehatan menuntut komunikasi yang akurat dan terpercaya. Kami berpengalaman mendampingi rumah sakit dan klinik membangun kehadiran digital yang profesional dan sesuai etika pemasaran layanan kesehatan.</p>
<p>Untuk %s yang saat ini berada di tahap %s, kami menyiapkan pendekatan yang mengedepankan edukasi pasien, bukan sekadar promosi.</p>`,
		v.ContactName, v.Company, v.Stage)
	return htmlDocument(v, "Pemasaran Layanan Kesehatan "+v.Company, body)
}

func skincareVariant(v templateVars) string {
	body := fmt.Sprintf(`<p>Yth. %s,</p>
<p>Di industri kecantikan, merek yang paling dekat dengan audiensnya yang memenangkan pasar. Kami membantu merek skincare membangun komunitas yang loyal melalui konten dan kampanye yang tepat sasaran.</p>
<p>Kami sudah menyiapkan beberapa ide kampanye untuk %s yang bisa langsung didiskusikan dari tahap %s ini.</p>`,
		v.ContactName, v.Company, v.Stage)
	return htmlDocument(v, "Membangun Merek "+v.Company, body)
}

func firstContactVariant(v templateVars) string {
	body := fmt.Sprintf(`<p>Yth. %s,</p>
<p>Perkenalkan, kami dari EMI Digital Indonesia. Kami membantu perusahaan seperti %s memperluas jangkauan pasarnya melalui strategi pemasaran digital yang terukur.</p>
<p>Sebagai langkah awal di tahap %s ini, kami ingin memahami kebutuhan %s lebih dalam sebelum mengusulkan apa pun.</p>`,
		v.ContactName, v.Company, v.Stage, v.Company)
	return htmlDocument(v, "Perkenalan dari EMI Digital", body)
}

func valueAddVariant(v templateVars) string {
	body := fmt.Sprintf(`<p>Yth. %s,</p>
<p>Menindaklanjuti perkenalan kami sebelumnya, kami ingin membagikan studi kasus singkat: salah satu klien kami di segmen yang serupa dengan %s berhasil menaikkan prospek masuk sebesar 2,5 kali lipat dalam satu kuartal.</p>
<p>Ringkasan studi kasus tersebut kami lampirkan sebagai bahan pertimbangan di tahap %s ini, tanpa ada kewajiban apa pun.</p>`,
		v.ContactName, v.Company, v.Stage)
	return htmlDocument(v, "Studi Kasus untuk "+v.Company, body)
}

func finalOfferVariant(v templateVars) string {
	body := fmt.Sprintf(`<p>Yth. %s,</p>
<p>Kami tidak ingin memenuhi kotak masuk Anda, jadi ini adalah email terakhir kami untuk saat ini. Sebagai penutup, kami menyiapkan penawaran khusus untuk %s: konsultasi menyeluruh beserta audit digital awal, tanpa biaya.</p>
<p>Penawaran ini berlaku selama dua minggu. Setelah itu kami tidak akan menghubungi kembali kecuali %s yang menghubungi kami.</p>`,
		v.ContactName, v.Company, v.ContactName)
	return htmlDocument(v, "Penawaran Terakhir untuk "+v.Company, body)
}

func defaultVariant(v templateVars) string {
	body := fmt.Sprintf(`<p>Yth. %s,</p>
<p>Kami dari EMI Digital Indonesia ingin berbagi bagaimana pemasaran digital yang terarah dapat membantu %s bertumbuh.</p>
<p>Saat ini %s tercatat pada tahap %s. Kami siap mendiskusikan langkah berikutnya kapan pun Anda berkenan.</p>`,
		v.ContactName, v.Company, v.Company, v.Stage)
	return htmlDocument(v, "Informasi untuk "+v.Company, body)
}
