package models

const (
	ContentBlog    = "blog"
	ContentEmail   = "email"
	ContentSocial  = "social"
	ContentProduct = "product"
	ContentArticle = "article"
	ContentStory   = "story"
	ContentAd      = "ad"
)

const (
	ToneProfessional = "professional"
	ToneCasual       = "casual"
	ToneFriendly     = "friendly"
	ToneFormal       = "formal"
	TonePersuasive   = "persuasive"
	ToneInformative  = "informative"
)

const (
	LengthShort  = "short"
	LengthMedium = "medium"
	LengthLong   = "long"
)

const (
	SummaryBrief    = "brief"
	SummaryDetailed = "detailed"
	SummaryBullet   = "bullet"
	SummaryAbstract = "abstract"
)

var ContentTypes = []ContentTypeOption{
	{ID: ContentBlog, Name: "Blog Post"},
	{ID: ContentEmail, Name: "Email"},
	{ID: ContentSocial, Name: "Social Media"},
	{ID: ContentProduct, Name: "Product Description"},
	{ID: ContentArticle, Name: "Article"},
	{ID: ContentStory, Name: "Story"},
	{ID: ContentAd, Name: "Advertisement"},
}

var (
	Tones        = []string{ToneProfessional, ToneCasual, ToneFriendly, ToneFormal, TonePersuasive, ToneInformative}
	Lengths      = []string{LengthShort, LengthMedium, LengthLong}
	SummaryTypes = []string{SummaryBrief, SummaryDetailed, SummaryBullet, SummaryAbstract}
)

// Catalog returns the option lists a client presents to the user.
func Catalog(note string) ContentTypesResponse {
	return ContentTypesResponse{
		ContentTypes: ContentTypes,
		Tones:        Tones,
		Lengths:      Lengths,
		SummaryTypes: SummaryTypes,
		Note:         note,
	}
}

func IsContentType(v string) bool {
	for _, ct := range ContentTypes {
		if ct.ID == v {
			return true
		}
	}
	return false
}

func IsTone(v string) bool        { return contains(Tones, v) }
func IsLength(v string) bool      { return contains(Lengths, v) }
func IsSummaryType(v string) bool { return contains(SummaryTypes, v) }

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
