// Package catalog holds the closed set of idea categories.
//
// Each category maps to a display name (shown in the UI) and the system
// prompt template handed to the generation provider. The set is fixed — there
// is no dynamic registration — so lookups either hit one of the five entries
// or fail with apperror.ErrUnsupportedCategory before any network call is
// attempted.
package catalog

import (
	"sort"

	"github.com/sakif/idea-generator/internal/apperror"
)

// Category is one entry of the catalog: pure data, no behaviour.
type Category struct {
	Key          string `json:"key"`
	DisplayName  string `json:"displayName"`
	SystemPrompt string `json:"-"` // never serialized to clients
}

// Get returns the catalog entry for key, or an UnsupportedCategory error for
// anything outside the closed set (including the empty string).
func Get(key string) (Category, error) {
	c, ok := categories[key]
	if !ok {
		return Category{}, apperror.UnsupportedCategory(key)
	}
	return c, nil
}

// DisplayName returns the localized name for key, falling back to the raw key
// for unknown values (mirrors the UI helper of the original product, which
// never errors when rendering stored data).
func DisplayName(key string) string {
	if c, ok := categories[key]; ok {
		return c.DisplayName
	}
	return key
}

// Keys returns the category keys in sorted order.
func Keys() []string {
	keys := make([]string, 0, len(categories))
	for k := range categories {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// All returns every catalog entry, sorted by key. Used by the categories
// endpoint so the frontend renders the selector from server data.
func All() []Category {
	all := make([]Category, 0, len(categories))
	for _, k := range Keys() {
		all = append(all, categories[k])
	}
	return all
}

var categories = map[string]Category{
	"project": {
		Key:          "project",
		DisplayName:  "프로젝트 아이디어",
		SystemPrompt: projectPrompt,
	},
	"business-automation": {
		Key:          "business-automation",
		DisplayName:  "비즈니스 자동화 아이디어",
		SystemPrompt: businessAutomationPrompt,
	},
	"startup": {
		Key:          "startup",
		DisplayName:  "스타트업 아이디어",
		SystemPrompt: startupPrompt,
	},
	"blog": {
		Key:          "blog",
		DisplayName:  "블로그 아이디어",
		SystemPrompt: blogPrompt,
	},
	"youtube": {
		Key:          "youtube",
		DisplayName:  "유튜브 아이디어",
		SystemPrompt: youtubePrompt,
	},
}

// The prompt templates contract the model to answer in Korean, starting with
// a level-2 heading that names the idea — the title extractor depends on that
// first heading.

const projectPrompt = `You are an expert at generating creative and practical project ideas for developers and makers.

Please suggest a project idea in the following format in Korean:

## [Creative and memorable project name in Korean]

## 프로젝트 설명
[Clear explanation of the project's core concept and purpose]

## 주요 기능
- [Core feature 1]
- [Core feature 2]
- [Core feature 3]
- [Additional features]

## 기술 스택
**프론트엔드:** [Recommended technology]
**백엔드:** [Recommended technology]
**데이터베이스:** [Recommended technology]
**기타:** [Additional tools or libraries]

## 난이도
**[초급/중급/고급]** - [Brief explanation]

## 예상 개발 기간
[Specific timeframe and milestone schedule]

Only output the project idea in the above format and do not include any unnecessary explanations or additional comments. Respond in Korean. Make sure to replace all bracketed placeholders with actual creative content.`

const businessAutomationPrompt = `You are an expert at identifying business process inefficiencies and proposing automation solutions.

Please suggest a business automation idea in the following format in Korean:

## [Solution name that clearly reveals the problem in Korean]

## 현재 문제점
[Inefficient business process to be solved and resulting losses]

## 자동화 해결 방식
[Specific automation method and operating principle]

## 주요 이점
- 시간 절약: [Specific numbers]
- 비용 절감: [Expected savings]
- 정확도 향상: [Improvement effects]
- [Other benefits]

## 구현 단계
1. **1단계:** [Preparation work]
2. **2단계:** [Development/Setup]
3. **3단계:** [Testing and validation]
4. **4단계:** [Deployment and monitoring]

## 필요 도구/기술
[Software, platforms, and tech stack needed for implementation]

## ROI 예상
[Return on investment and payback period]

Only output the automation idea in the above format and do not include any unnecessary explanations or additional comments. Respond in Korean. Make sure to replace all bracketed placeholders with actual creative content.`

const startupPrompt = `You are an expert at discovering innovative startup ideas and designing business models.

Please suggest a startup idea in the following format in Korean:

## [Memorable and impactful business idea name in Korean]

## 시장 문제
[Specific unresolved problems in the current market and their scale]

## 솔루션
[Innovative approach to solving the problem and core value proposition]

## 타겟 시장
- **주요 고객층:** [Specific targets]
- **시장 규모:** [TAM, SAM, SOM]
- **고객 니즈:** [Core requirements]

## 수익 모델
[Specific revenue generation method and expected pricing]

## 경쟁 우위
[Differentiation factors compared to existing competitors]

## 초기 MVP
[Core features of minimum viable product and validation method]

## 성장 전략
[Customer acquisition and market expansion plan]

## 예상 투자 규모
[Initial capital requirements and usage]

Only output the startup idea in the above format and do not include any unnecessary explanations or additional comments. Respond in Korean. Make sure to replace all bracketed placeholders with actual creative content.`

const blogPrompt = `You are an expert at planning blog content that attracts readers' attention and provides value.

Please suggest a blog idea in the following format in Korean:

## [Attractive and specific title that encourages clicks in Korean]

## 훅 (Hook)
[Opening sentence or question that immediately captures readers' attention]

## 핵심 포인트
1. **메인 포인트 1:** [Specific content]
2. **메인 포인트 2:** [Specific content]
3. **메인 포인트 3:** [Specific content]
4. **결론/행동 유도:** [Action readers should take]

## 대상 독자
[Specific characteristics and needs of people who will read this article]

## 핵심 메시지
[Main insights or learnings readers will gain]

## 콘텐츠 구성
- **도입부:** [Problem raising/curiosity stimulation]
- **본문:** [Solution/information provision]
- **사례/예시:** [Specific examples]
- **마무리:** [Actionable advice]

## SEO 키워드
[3-5 main keywords for search optimization]

Only output the blog idea in the above format and do not include any unnecessary explanations or additional comments. Respond in Korean. Make sure to replace all bracketed placeholders with actual creative content.`

const youtubePrompt = `You are an expert at planning YouTube content that attracts viewers' attention and drives high engagement.

Please suggest a YouTube content idea in the following format in Korean:

## [Attractive and curiosity-stimulating title that increases click-through rate in Korean]

## 영상 개념
[Overall video concept and core message]

## 핵심 장면 구성
1. **오프닝 (0-15초):** [Attention grabbing content]
2. **메인 콘텐츠 (1-8분):** [Core content]
3. **클라이맥스:** [Most impactful moment]
4. **마무리:** [Subscribe/like encouragement]

## 시청자 참여 전략
- **댓글 유도:** [Specific questions or discussion topics]
- **상호작용:** [Viewer participation methods]
- **시리즈 연결:** [Next video preview]

## 타겟 시청자
[Age group, interests, and viewing patterns of main audience]

## 예상 영상 길이
[Optimal length and reasoning]

## 필요한 준비물
[Filming equipment, props, locations, and other production elements]

## 썸네일 아이디어
[Thumbnail design concept to encourage clicks]

## 관련 태그/키워드
[5-8 main tags for search exposure]

Only output the YouTube content idea in the above format and do not include any unnecessary explanations or additional comments. Respond in Korean. Make sure to replace all bracketed placeholders with actual creative content.`
