package extract

import (
	"strings"

	"github.com/samber/lo"
	"github.com/samber/mo"
)

func stripSiteSuffix(s string) string {
	return TitleSiteSuffix.Re.ReplaceAllString(s, "")
}

// stripLastSegment drops the trailing " - Site" part of a <title>.
func stripLastSegment(s string) string {
	if i := strings.LastIndex(s, " - "); i > 0 {
		return s[:i]
	}
	return s
}

var (
	titleStrategies = []Strategy[string]{
		Text(TitleMeta, stripSiteSuffix),
		Text(TitleTag, stripLastSegment),
		LDString("name"),
	}
	descriptionStrategies = []Strategy[string]{
		Text(DescriptionMeta),
		LDString("description"),
	}
	thumbnailStrategies = []Strategy[string]{
		Text(ThumbnailMeta),
		LDString("thumbnailUrl"),
	}
	durationStrategies = []Strategy[int]{
		Int(DurationMeta),
		Int(DurationText),
		LDDuration("duration"),
	}
	viewsStrategies = []Strategy[int]{
		Int(ViewsText),
		LDInt("interactionCount"),
	}
	ratingStrategies = []Strategy[float64]{
		Float(RatingText),
		LDFloat("aggregateRating_ratingValue"),
	}
	likesStrategies = []Strategy[int]{
		Int(LikesText),
	}
	uploaderStrategies = []Strategy[string]{
		Text(UploaderText),
		Text(UploaderLink),
		LDString("author_name"),
	}
	publishDateStrategies = []Strategy[string]{
		Text(PublishDateText),
		LDString("uploadDate"),
	}
)

// profileText builds the label/data, alternate and data-attribute chain for
// a profile field. Nil patterns are skipped.
func profileText(patterns ...*Pattern) []Strategy[string] {
	var out []Strategy[string]
	for _, p := range patterns {
		if p != nil {
			out = append(out, Text(p))
		}
	}
	return out
}

var (
	realNameStrategies        = profileText(ProfileRealName, ProfileRealNameAlt)
	genderStrategies          = profileText(ProfileGender, ProfileGenderAlt, ProfileGenderData)
	interestedInStrategies    = profileText(ProfileInterestedIn, ProfileInterestedInAlt)
	locationStrategies        = profileText(ProfileLocation, ProfileLocationAlt, ProfileLocationData)
	lastBroadcastStrategies   = profileText(ProfileLastBroadcast, ProfileLastBroadcastAlt)
	languagesStrategies       = profileText(ProfileLanguages, ProfileLanguagesAlt)
	bodyTypeStrategies        = profileText(ProfileBodyType, ProfileBodyTypeAlt)
	bodyDecorationsStrategies = profileText(ProfileBodyDecorations, ProfileBodyDecorationsAlt)
	followersStrategies       = []Strategy[int]{Int(ProfileFollowers), Int(ProfileFollowersAlt), Int(ProfileFollowersData)}
	ageStrategies             = []Strategy[int]{Int(ProfileAge), Int(ProfileAgeAlt), Int(ProfileAgeData)}
)

// Video field extractors. Each runs its strategy table in order and returns
// the first present value, or None when every strategy misses.

func Title(p Page) mo.Option[string]       { return Resolve(p, titleStrategies...) }
func Description(p Page) mo.Option[string] { return Resolve(p, descriptionStrategies...) }
func Thumbnail(p Page) mo.Option[string]   { return Resolve(p, thumbnailStrategies...) }
func Duration(p Page) mo.Option[int]       { return Resolve(p, durationStrategies...) }
func Views(p Page) mo.Option[int]          { return Resolve(p, viewsStrategies...) }
func Rating(p Page) mo.Option[float64]     { return Resolve(p, ratingStrategies...) }
func Likes(p Page) mo.Option[int]          { return Resolve(p, likesStrategies...) }
func Uploader(p Page) mo.Option[string]    { return Resolve(p, uploaderStrategies...) }
func PublishDate(p Page) mo.Option[string] { return Resolve(p, publishDateStrategies...) }

// Profile field extractors. Each tries the label/data pair, then the
// alternate and data-attribute forms.

func RealName(p Page) mo.Option[string]        { return Resolve(p, realNameStrategies...) }
func Gender(p Page) mo.Option[string]          { return Resolve(p, genderStrategies...) }
func InterestedIn(p Page) mo.Option[string]    { return Resolve(p, interestedInStrategies...) }
func Location(p Page) mo.Option[string]        { return Resolve(p, locationStrategies...) }
func LastBroadcast(p Page) mo.Option[string]   { return Resolve(p, lastBroadcastStrategies...) }
func Languages(p Page) mo.Option[string]       { return Resolve(p, languagesStrategies...) }
func BodyType(p Page) mo.Option[string]        { return Resolve(p, bodyTypeStrategies...) }
func BodyDecorations(p Page) mo.Option[string] { return Resolve(p, bodyDecorationsStrategies...) }
func Followers(p Page) mo.Option[int]          { return Resolve(p, followersStrategies...) }
func Age(p Page) mo.Option[int]                { return Resolve(p, ageStrategies...) }

// allMatches returns group 1 of every match of p, cleaned and deduplicated in
// discovery order.
func allMatches(p *Pattern, content string) []string {
	var out []string
	for _, m := range p.Re.FindAllStringSubmatch(content, -1) {
		if s := cleanText(m[1]); s != "" {
			out = append(out, s)
		}
	}
	return lo.Uniq(out)
}

// Tags returns every tag or category slug linked from the page.
func Tags(p Page) []string {
	return allMatches(TagLink, p.Content)
}

// SocialMedia returns every outbound social profile link.
func SocialMedia(p Page) []string {
	return allMatches(ProfileSocialLink, p.Content)
}

// IsOnline reports whether the page carries a live or online marker.
func IsOnline(p Page) bool {
	return ProfileOnlineFlag.Re.MatchString(p.Content) || ProfileOnlineClass.Re.MatchString(p.Content)
}
