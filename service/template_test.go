package service

import (
	"testing"

	"github.com/emidigital/emi-crm/models"

	"github.com/stretchr/testify/assert"
)

var testSender = SenderProfile{
	Name:  "Rina Wulandari",
	Role:  "Marketing Executive",
	Email: "rina@emidigital.id",
}

func TestSelectTemplateRoleBeatsIndustryAndCount(t *testing.T) {
	prospect := models.Prospect{CompanyName: "Acme"}

	html := SelectTemplate(prospect, "CEO of ops", "tech", 1, testSender)

	assert.Contains(t, html, "sesi diskusi strategis", "leadership variant expected")
	assert.NotContains(t, html, "Kolaborasi Teknologi")
	assert.NotContains(t, html, "Perkenalkan, kami dari EMI Digital")
}

func TestSelectTemplateIndustryBeatsFollowupCount(t *testing.T) {
	prospect := models.Prospect{CompanyName: "Acme"}

	html := SelectTemplate(prospect, "", "Healthcare Clinic", 5, testSender)

	assert.Contains(t, html, "rumah sakit dan klinik", "healthcare variant expected")
	assert.NotContains(t, html, "email terakhir")
}

func TestSelectTemplateRoleVariants(t *testing.T) {
	prospect := models.Prospect{CompanyName: "Acme"}

	assert.Contains(t, SelectTemplate(prospect, "Founder & Owner", "", 1, testSender), "sesi diskusi strategis")
	assert.Contains(t, SelectTemplate(prospect, "CFO", "", 1, testSender), "efisiensi biaya")
	assert.Contains(t, SelectTemplate(prospect, "Head of Engineering", "", 1, testSender), "REST API")
}

func TestSelectTemplateRoleMatchingIsBroadSubstring(t *testing.T) {
	prospect := models.Prospect{CompanyName: "Acme"}

	// "digital" contains "it": the broad token match is intended behavior
	html := SelectTemplate(prospect, "Digital Strategist", "skincare", 1, testSender)

	assert.Contains(t, html, "REST API", "technical variant expected for a role containing \"it\"")
}

func TestSelectTemplateIndustryVariants(t *testing.T) {
	prospect := models.Prospect{CompanyName: "Acme"}

	assert.Contains(t, SelectTemplate(prospect, "", "Teknologi Informasi", 4, testSender), "Kolaborasi Teknologi")
	assert.Contains(t, SelectTemplate(prospect, "", "Skincare & Beauty", 4, testSender), "merek skincare")
}

func TestSelectTemplateFollowupCountCascade(t *testing.T) {
	prospect := models.Prospect{CompanyName: "Acme"}

	assert.Contains(t, SelectTemplate(prospect, "", "", 1, testSender), "Perkenalkan, kami dari EMI Digital")
	assert.Contains(t, SelectTemplate(prospect, "", "", 2, testSender), "studi kasus")
	assert.Contains(t, SelectTemplate(prospect, "", "", 3, testSender), "email terakhir")
	assert.Contains(t, SelectTemplate(prospect, "", "", 7, testSender), "email terakhir")
}

func TestSelectTemplateDefaultVariant(t *testing.T) {
	prospect := models.Prospect{CompanyName: "Acme"}

	assert.Contains(t, SelectTemplate(prospect, "", "", 0, testSender), "Informasi untuk Acme")
	assert.Contains(t, SelectTemplate(prospect, "", "", -2, testSender), "Informasi untuk Acme")
}

func TestSelectTemplateAppliesDefaultsForMissingFields(t *testing.T) {
	html := SelectTemplate(models.Prospect{}, "", "", 0, SenderProfile{Email: "fallback@emidigital.id"})

	assert.Contains(t, html, "Bapak/Ibu")
	assert.Contains(t, html, "Perusahaan")
	assert.Contains(t, html, "baru")
	// no prospect phone: the sender's own email is the contact channel
	assert.Contains(t, html, "fallback@emidigital.id")
	assert.Contains(t, html, "EMI Marketing Team")
	assert.Contains(t, html, "Tim EMI")
}

func TestSelectTemplatePrefersProspectPhoneAsChannel(t *testing.T) {
	prospect := models.Prospect{
		CompanyName:  "Acme",
		ContactName:  "Budi Santoso",
		ContactPhone: "+62 812 3456 7890",
		NextStep:     "penawaran harga",
	}

	html := SelectTemplate(prospect, "", "", 1, testSender)

	assert.Contains(t, html, "Budi Santoso")
	assert.Contains(t, html, "+62 812 3456 7890")
	assert.Contains(t, html, "penawaran harga")
	assert.NotContains(t, html, "rina@emidigital.id")
}

func TestSelectTemplateIsDeterministic(t *testing.T) {
	prospect := models.Prospect{CompanyName: "Acme", Industry: "Kesehatan"}

	first := SelectTemplate(prospect, "", "Kesehatan", 2, testSender)
	second := SelectTemplate(prospect, "", "Kesehatan", 2, testSender)

	assert.Equal(t, first, second)
}

func TestSelectTemplateSharedFooter(t *testing.T) {
	prospect := models.Prospect{CompanyName: "Acme"}

	for _, n := range []int{0, 1, 2, 3} {
		html := SelectTemplate(prospect, "", "", n, testSender)
		assert.Contains(t, html, "EMI Digital Indonesia", "every variant carries the footer")
		assert.Contains(t, html, "Balas email ini apabila tidak ingin menerima informasi berikutnya.")
	}
}
