// internal/advisor/knowledge.go
package advisor

import (
	"sort"
	"strings"
	"sync"
	"unicode"
)

// LegalDocument is a statute or procedure snippet used as grounding context.
type LegalDocument struct {
	Content  string `json:"content"`
	Source   string `json:"source"`
	Section  string `json:"section,omitempty"`
	Article  string `json:"article,omitempty"`
	Category string `json:"category"`
	Type     string `json:"type,omitempty"`
}

// Reference is "<source> <section or article>".
func (d LegalDocument) Reference() string {
	ref := d.Section
	if ref == "" {
		ref = d.Article
	}
	return strings.TrimSpace(d.Source + " " + ref)
}

type KnowledgeResult struct {
	Document  LegalDocument `json:"document"`
	Relevance float64       `json:"relevanceScore"`
}

// KnowledgeBase ranks documents by the share of query terms they contain.
type KnowledgeBase struct {
	mu   sync.RWMutex
	docs []LegalDocument
}

func NewKnowledgeBase(docs ...LegalDocument) *KnowledgeBase {
	if len(docs) == 0 {
		docs = defaultDocuments()
	}
	kb := &KnowledgeBase{}
	kb.docs = append(kb.docs, docs...)
	return kb
}

func (kb *KnowledgeBase) Add(doc LegalDocument) {
	kb.mu.Lock()
	defer kb.mu.Unlock()
	kb.docs = append(kb.docs, doc)
}

func (kb *KnowledgeBase) Len() int {
	kb.mu.RLock()
	defer kb.mu.RUnlock()
	return len(kb.docs)
}

// Search returns up to topK documents that share at least one term with the
// query, most relevant first.
func (kb *KnowledgeBase) Search(query string, topK int) []KnowledgeResult {
	terms := queryTerms(query)
	if len(terms) == 0 || topK <= 0 {
		return []KnowledgeResult{}
	}

	kb.mu.RLock()
	defer kb.mu.RUnlock()

	results := make([]KnowledgeResult, 0, len(kb.docs))
	for _, doc := range kb.docs {
		haystack := strings.ToLower(doc.Content + " " + doc.Source + " " + doc.Category + " " + doc.Type)
		hits := 0
		for _, term := range terms {
			if strings.Contains(haystack, term) {
				hits++
			}
		}
		if hits > 0 {
			results = append(results, KnowledgeResult{
				Document:  doc,
				Relevance: float64(hits) / float64(len(terms)),
			})
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Relevance > results[j].Relevance
	})
	if len(results) > topK {
		results = results[:topK]
	}
	return results
}

var stopWords = map[string]struct{}{
	"the": {}, "and": {}, "for": {}, "with": {}, "that": {}, "this": {}, "from": {},
	"have": {}, "has": {}, "was": {}, "are": {}, "what": {}, "can": {}, "how": {},
	"my": {}, "me": {}, "is": {}, "to": {}, "of": {}, "in": {}, "on": {}, "an": {},
	"who": {}, "not": {}, "without": {}, "about": {}, "does": {}, "should": {},
	"trying": {}, "there": {}, "their": {}, "they": {}, "will": {}, "would": {},
}

func queryTerms(query string) []string {
	fields := strings.FieldsFunc(strings.ToLower(query), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	seen := make(map[string]struct{}, len(fields))
	terms := make([]string, 0, len(fields))
	for _, f := range fields {
		if len(f) < 3 {
			continue
		}
		if _, stop := stopWords[f]; stop {
			continue
		}
		if _, dup := seen[f]; dup {
			continue
		}
		seen[f] = struct{}{}
		terms = append(terms, f)
	}
	return terms
}

func defaultDocuments() []LegalDocument {
	return []LegalDocument{
		{
			Content:  "Article 14: Right to Equality - The State shall not deny to any person equality before the law or the equal protection of the laws within the territory of India. This fundamental right ensures that all persons, regardless of their status, are treated equally under the law.",
			Source:   "Constitution of India",
			Article:  "14",
			Category: "Fundamental Rights",
		},
		{
			Content:  "Article 19: Right to Freedom - All citizens shall have the right to freedom of speech and expression, to assemble peaceably and without arms, to form associations or unions, to move freely throughout India, and to practice any profession or carry on any occupation, trade or business.",
			Source:   "Constitution of India",
			Article:  "19",
			Category: "Fundamental Rights",
		},
		{
			Content:  "Article 21: Right to Life and Personal Liberty - No person shall be deprived of his life or personal liberty except according to procedure established by law. This includes right to live with dignity, right to privacy, right to health, and right to education.",
			Source:   "Constitution of India",
			Article:  "21",
			Category: "Fundamental Rights",
		},
		{
			Content:  "Section 375 IPC: Rape - A man is said to commit rape if he has sexual intercourse with a woman against her will, without her consent, with her consent obtained by putting her in fear of death or hurt, or with her consent when she believes he is her husband.",
			Source:   "Indian Penal Code",
			Section:  "375",
			Category: "Criminal Law",
		},
		{
			Content:  "Section 420 IPC: Cheating and dishonestly inducing delivery of property - Whoever cheats and thereby dishonestly induces the person deceived to deliver any property shall be punished with imprisonment up to seven years and fine.",
			Source:   "Indian Penal Code",
			Section:  "420",
			Category: "Criminal Law",
		},
		{
			Content:  "Section 498A IPC: Domestic Violence - Whoever, being the husband or relative of the husband of a woman, subjects such woman to cruelty shall be punished with imprisonment up to three years and fine.",
			Source:   "Indian Penal Code",
			Section:  "498A",
			Category: "Criminal Law",
			Type:     "Domestic Violence",
		},
		{
			Content:  "Consumer Protection Act 2019: Consumer Rights - Every consumer has the right to be protected against marketing of goods and services which are hazardous to life and property, right to be informed about quality, quantity, potency, purity, standard and price of goods or services, right to be assured access to variety of goods and services at competitive prices.",
			Source:   "Consumer Protection Act 2019",
			Category: "Consumer Law",
		},
		{
			Content:  "Consumer Complaint Process: A consumer can file a complaint in District Forum (up to ₹1 crore), State Commission (₹1 crore to ₹10 crore), or National Commission (above ₹10 crore). Complaint must be filed within 2 years of cause of action. No court fee for complaints up to ₹5 lakhs.",
			Source:   "Consumer Protection Act 2019",
			Category: "Consumer Law",
			Type:     "Complaint Filing",
		},
		{
			Content:  "Hindu Marriage Act 1955: Grounds for Divorce - Adultery, cruelty (mental or physical), desertion for 2+ years, conversion to another religion, unsound mind, incurable leprosy, venereal disease, renunciation of world. Mutual consent divorce also available under Section 13B.",
			Source:   "Hindu Marriage Act 1955",
			Category: "Family Law",
			Type:     "Divorce",
		},
		{
			Content:  "Child Custody Laws: Courts decide custody based on child's welfare as paramount consideration. Generally, children below 5 years stay with mother. Father's financial capacity, mother's moral character, child's preference (if mature) are considered.",
			Source:   "Family Courts Act",
			Category: "Family Law",
			Type:     "Child Custody",
		},
		{
			Content:  "Transfer of Property Act 1882: A sale is a transfer of ownership in exchange for a price paid or promised. For immovable property above ₹100, sale deed must be registered. Stamp duty varies by state. Both buyer and seller must sign in presence of witnesses.",
			Source:   "Transfer of Property Act 1882",
			Category: "Property Law",
			Type:     "Sale",
		},
		{
			Content:  "Rent Control Laws: Tenant cannot be evicted except on specific grounds - non-payment of rent, subletting without permission, using premises for illegal purpose, causing damage to property. Landlord must give notice period as per state rent control act.",
			Source:   "Rent Control Act",
			Category: "Property Law",
			Type:     "Rental",
		},
		{
			Content:  "Industrial Disputes Act 1947: No workman can be retrenched unless 1 month's notice or pay in lieu, compensation equal to 15 days average pay for each completed year of service, and permission from appropriate government if establishment employs 100+ workers.",
			Source:   "Industrial Disputes Act 1947",
			Category: "Labour Law",
			Type:     "Retrenchment",
		},
		{
			Content:  "Sexual Harassment at Workplace Act 2013: Every workplace with 10+ employees must constitute Internal Complaints Committee. Complaint to be filed within 3 months. Interim relief can include transfer of complainant or respondent. Penalty for false complaint possible.",
			Source:   "POSH Act 2013",
			Category: "Labour Law",
			Type:     "Sexual Harassment",
		},
		{
			Content:  "Information Technology Act 2000: Section 66A (now struck down) dealt with offensive messages. Section 67 criminalizes publishing obscene material. Section 43 provides for compensation for data damage. Cyber crimes can be reported to local police or cybercrime cell.",
			Source:   "IT Act 2000",
			Category: "Cyber Law",
		},
		{
			Content:  "Civil Procedure Code: Limitation period for filing suit - 3 years for recovery of immovable property, 3 years for compensation for negligence, 1 year for defamation, 3 years for breach of contract. Time starts from when cause of action arises.",
			Source:   "Code of Civil Procedure 1908",
			Category: "Civil Law",
			Type:     "Limitation",
		},
	}
}
