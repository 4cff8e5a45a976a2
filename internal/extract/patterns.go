package extract

import (
	"regexp"
)

// Version identifies the revision of the site markup the pattern table targets.
// Bump it whenever a pattern below changes.
const Version = "2025.1"

// Pattern is a named regular expression. Group 1 carries the extracted value
// unless noted otherwise.
type Pattern struct {
	Name string
	Re   *regexp.Regexp
}

func pattern(name, expr string) *Pattern {
	return &Pattern{Name: name, Re: regexp.MustCompile(expr)}
}

// profilePattern matches the <div class="label">…</div><div class="data">…</div>
// pairs used on profile pages.
func profilePattern(name, label string) *Pattern {
	return pattern(name,
		`(?is)<div[^>]*class=["']label["'][^>]*>\s*`+label+`[:\s：]*</div>\s*<div[^>]*class=["']data["'][^>]*>\s*([^<]+?)\s*</div>`)
}

// profileAltPattern is the looser form of profilePattern that ignores class names.
func profileAltPattern(name, label string) *Pattern {
	return pattern(name, `(?i)`+label+`[:\s：]*</div>\s*<div[^>]*>\s*([^<]+)`)
}

// Identifiers.
var (
	VideoIDPath  = pattern("id.path", `/video/(\d+)`)
	VideoIDLoose = pattern("id.loose", `video[/-](\d+)`)
)

// Video metadata.
var (
	TitleMeta       = pattern("title.og", `(?i)<meta\s+property=["']og:title["']\s+content=["']([^"']+)["']`)
	TitleTag        = pattern("title.tag", `(?i)<title>([^<]+)</title>`)
	TitleSiteSuffix = pattern("title.suffix", `(?i)\s+-\s+xview(?:\.tv)?\s*$`)
	DescriptionMeta = pattern("description.og", `(?i)<meta\s+property=["']og:description["']\s+content=["']([^"']+)["']`)
	ThumbnailMeta   = pattern("thumbnail.og", `(?i)<meta\s+property=["']og:image["']\s+content=["']([^"']+)["']`)
	DurationMeta    = pattern("duration.meta", `(?i)<meta\s+property=["']video:duration["']\s+content=["'](\d+)["']`)
	DurationText    = pattern("duration.text", `(?i)duration["']?\s*[:=]\s*["']?(\d+)`)
	ViewsText       = pattern("views.text", `(?i)(?:views?|播放)["']?\s*[:=]?\s*["']?([\d,]+)`)
	RatingText      = pattern("rating.text", `(?i)(?:rating|评分)["']?\s*[:=]?\s*["']?([\d.]+)`)
	LikesText       = pattern("likes.text", `(?i)(?:likes?|喜欢)["']?\s*[:=]?\s*["']?([\d,]+)`)
	UploaderText    = pattern("uploader.text", `(?i)(?:uploader|author|user)["']?\s*[:=]\s*["']([^"']+)["']`)
	UploaderLink    = pattern("uploader.link", `(?i)<a[^>]+href=["'][^"']*(?:user|profile|channel)/([^"'/]+)["']`)
	TagLink         = pattern("tags.link", `(?i)<a[^>]+href=["'][^"']*(?:tag|category)/([^"'/]+)["']`)
	PublishDateText = pattern("date.text", `(?i)(?:upload|date|published)["']?\s*[:=]\s*["']?(\d{4}[-/]\d{2}[-/]\d{2})`)
)

// DisabledMarkers matches removed, disabled and error pages. It has no capture group.
var DisabledMarkers = pattern("status.disabled",
	`(?i)(?:video|room|page)\s*(?:not\s*found|removed|deleted|disabled|unavailable)|\b404\s*-?\s*not\s*found|<title>[^<]*\b(?:404|error)\b[^<]*</title>`)

// JSON-LD script blocks are located with goquery; this type value is matched
// case-insensitively.
const jsonLDType = "application/ld+json"

// Profile attributes.
var (
	ProfileRealName    = profilePattern("profile.real_name", `(?:Real\s*Name|真名)`)
	ProfileRealNameAlt = profileAltPattern("profile.real_name.alt", `(?:Real\s*Name|真名)`)

	ProfileFollowers     = profilePattern("profile.followers", `(?:Followers|关注者)`)
	ProfileFollowersAlt  = pattern("profile.followers.alt", `(?i)(?:Followers|关注者)[:\s：]*</div>\s*<div[^>]*>\s*([\d,]+)`)
	ProfileFollowersData = pattern("profile.followers.data", `(?i)(?:follower_count|num_followers)["']?\s*[:=]\s*["']?([\d,]+)`)

	ProfileGender     = profilePattern("profile.gender", `(?:I\s*am|我是)`)
	ProfileGenderAlt  = profileAltPattern("profile.gender.alt", `(?:I\s*am|我是)`)
	ProfileGenderData = pattern("profile.gender.data", `(?i)(?:gender|sex)["']?\s*[:=]\s*["']([^"']+)["']`)

	ProfileInterestedIn    = profilePattern("profile.interested_in", `(?:Interested\s*In|对以下选项有兴趣)[：:]?`)
	ProfileInterestedInAlt = profileAltPattern("profile.interested_in.alt", `(?:Interested\s*In|对以下选项有兴趣)`)

	ProfileLocation     = profilePattern("profile.location", `(?:Location|位置)`)
	ProfileLocationAlt  = profileAltPattern("profile.location.alt", `(?:Location|位置)`)
	ProfileLocationData = pattern("profile.location.data", `(?i)(?:location|country)["']?\s*[:=]\s*["']([^"']+)["']`)

	ProfileLastBroadcast    = profilePattern("profile.last_broadcast", `(?:Last\s*Broadcast|上次直播时间|上次直播的时间)`)
	ProfileLastBroadcastAlt = profileAltPattern("profile.last_broadcast.alt", `(?:Last\s*Broadcast|上次直播时间|上次直播的时间)`)

	ProfileLanguages    = profilePattern("profile.languages", `(?:Languages?|语言)`)
	ProfileLanguagesAlt = profileAltPattern("profile.languages.alt", `(?:Languages?|语言)`)

	ProfileBodyType    = profilePattern("profile.body_type", `(?:Body\s*Type|体型)`)
	ProfileBodyTypeAlt = profileAltPattern("profile.body_type.alt", `(?:Body\s*Type|体型)`)

	ProfileBodyDecorations    = profilePattern("profile.body_decorations", `(?:Body\s*Decorations?|身体装饰)`)
	ProfileBodyDecorationsAlt = profileAltPattern("profile.body_decorations.alt", `(?:Body\s*Decorations?|身体装饰)`)

	// The age patterns stay strict so stray numbers such as HTTP status codes
	// are not picked up.
	ProfileAge     = profilePattern("profile.age", `(?:Age|年龄)`)
	ProfileAgeAlt  = pattern("profile.age.alt", `(?i)<div[^>]*class=["']label["'][^>]*>\s*(?:Age|年龄)[:\s：]*</div>\s*<div[^>]*class=["']data["'][^>]*>\s*(\d{1,3})\s*</div>`)
	ProfileAgeData = pattern("profile.age.data", `(?i)"age"\s*:\s*(\d{1,3})(?:\D|$)`)

	ProfileSocialLink = pattern("profile.social", `(?i)<a[^>]+href=["']([^"']+(?:twitter|x\.com|instagram|snapchat|onlyfans|fansly|tiktok|youtube)[^"']*)["'][^>]*>`)

	ProfileOnlineFlag  = pattern("profile.online.flag", `(?i)(?:"is_online"\s*:\s*|"online"\s*:\s*)(true|1|"yes")`)
	ProfileOnlineClass = pattern("profile.online.class", `(?i)class=["'][^"']*\b(?:online|streaming|live)\b[^"']*["']`)
)

// Media sources. ScriptSource carries the format in group 2.
var (
	SourceTag    = pattern("source.tag", `(?i)<source\s+src=["']([^"']+)["']`)
	SourceMP4    = pattern("source.mp4", `(?i)(https?://[^"'<>\s]+\.mp4[^"'<>\s]*)`)
	SourceM3U8   = pattern("source.m3u8", `(?i)(https?://[^"'<>\s]+\.m3u8[^"'<>\s]*)`)
	ScriptSource = pattern("source.script", `(?i)(?:source|src|video_url|videoUrl|file)["']?\s*[:=]\s*["']([^"']+\.(mp4|m3u8)[^"']*)["']`)
	QualityToken = pattern("source.quality", `(?i)(\d{3,4})p`)
)

// Listing pages.
var (
	ListingAnchor = pattern("listing.anchor", `(?is)<a[^>]+href=["']/?(?:room|video|profile)/([^"'/]+)["'][^>]*>`)
	ListingData   = pattern("listing.data", `(?i)data-(?:username|room|id)=["']([^"'/]+)["']`)
	ListingJSON   = pattern("listing.json", `(?i)["'](?:username|room_id|id)["']\s*:\s*["']([^"'/]+)["']`)
)
