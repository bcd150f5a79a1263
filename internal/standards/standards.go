// Package standards holds the built-in library of preset regulatory
// standards users can audit against without uploading their own text.
package standards

// Standard is one preset regulatory standard. ExtractedText is the
// pre-distilled requirements text used as the standard document body when a
// preset is imported into the vault.
type Standard struct {
	ID              string
	Name            string
	ShortName       string
	Description     string
	Category        string
	KeyRequirements []string
	ExtractedText   string
}

// Presets returns the library in display order. The returned slice is shared;
// callers must not mutate it.
func Presets() []Standard {
	return presets
}

// ByID returns the preset with the given id, or false if none matches.
func ByID(id string) (Standard, bool) {
	for _, s := range presets {
		if s.ID == id {
			return s, true
		}
	}
	return Standard{}, false
}

var presets = []Standard{
	{
		ID:          "gdpr",
		Name:        "General Data Protection Regulation",
		ShortName:   "GDPR",
		Description: "EU regulation on data protection and privacy for individuals within the European Union and European Economic Area.",
		Category:    "Data Privacy",
		KeyRequirements: []string{
			"Lawful basis for processing",
			"Data subject rights",
			"Data breach notification",
			"Privacy by design",
			"Data Protection Officer",
			"Cross-border data transfers",
		},
		ExtractedText: `GENERAL DATA PROTECTION REGULATION (GDPR) - KEY COMPLIANCE REQUIREMENTS

ARTICLE 5 - PRINCIPLES RELATING TO PROCESSING OF PERSONAL DATA
Personal data shall be: processed lawfully, fairly and in a transparent manner ('lawfulness, fairness and transparency'); collected for specified, explicit and legitimate purposes ('purpose limitation'); adequate, relevant and limited to what is necessary ('data minimisation'); accurate and kept up to date ('accuracy'); kept no longer than necessary ('storage limitation'); processed in a manner that ensures appropriate security ('integrity and confidentiality').

ARTICLE 6 - LAWFULNESS OF PROCESSING
Processing is lawful only with consent, or where necessary for a contract, a legal obligation, vital interests, a public-interest task, or legitimate interests pursued by the controller.

ARTICLE 7 - CONDITIONS FOR CONSENT
The controller shall be able to demonstrate consent. Consent must be freely given, specific, informed and unambiguous, and withdrawable at any time.

ARTICLE 12-23 - RIGHTS OF THE DATA SUBJECT
Right of access, rectification, erasure ('right to be forgotten'), restriction of processing, data portability, objection, and rights related to automated decision making and profiling.

ARTICLE 25 - DATA PROTECTION BY DESIGN AND BY DEFAULT
Appropriate technical and organisational measures ensuring that, by default, only personal data necessary for each specific purpose are processed.

ARTICLE 32 - SECURITY OF PROCESSING
Pseudonymisation and encryption; ability to ensure confidentiality, integrity and availability; ability to restore access after incidents; regular testing of security measures.

ARTICLE 33-34 - DATA BREACH NOTIFICATION
Breaches must be notified to the supervisory authority within 72 hours. High-risk breaches must also be communicated to affected data subjects.

ARTICLE 35 - DATA PROTECTION IMPACT ASSESSMENT
Required when processing is likely to result in high risk to the rights and freedoms of natural persons.

ARTICLE 37-39 - DATA PROTECTION OFFICER
Required for public authorities, large-scale systematic monitoring, or large-scale processing of special categories of data.

ARTICLE 44-49 - TRANSFERS TO THIRD COUNTRIES
Transfers outside the EEA only with adequate safeguards (adequacy decisions, SCCs, BCRs).`,
	},
	{
		ID:          "soc2",
		Name:        "SOC 2 Type II",
		ShortName:   "SOC 2",
		Description: "AICPA framework for managing customer data based on five trust service criteria: security, availability, processing integrity, confidentiality, and privacy.",
		Category:    "Security",
		KeyRequirements: []string{
			"Access controls",
			"Change management",
			"Risk assessment",
			"Incident response",
			"Vendor management",
			"Encryption standards",
		},
		ExtractedText: `SOC 2 TYPE II - TRUST SERVICES CRITERIA COMPLIANCE REQUIREMENTS

SECURITY (COMMON CRITERIA)
CC1 - CONTROL ENVIRONMENT: commitment to integrity and ethical values; board oversight; defined structures, reporting lines and authorities; competence and accountability of personnel.
CC2 - COMMUNICATION AND INFORMATION: relevant, quality information obtained and communicated internally and to external parties regarding internal control.
CC3 - RISK ASSESSMENT: objectives specified with sufficient clarity; risks to objectives identified and analyzed; fraud risk considered; significant changes assessed.
CC4 - MONITORING ACTIVITIES: ongoing and separate evaluations of controls; deficiencies evaluated and communicated.
CC5 - CONTROL ACTIVITIES: control activities selected and deployed through policies and procedures, including over technology.
CC6 - LOGICAL AND PHYSICAL ACCESS: access credentials issued, managed and removed; access restricted to authorized users; physical access protected; transmission and disposal of data protected; encryption of data at rest and in transit.
CC7 - SYSTEM OPERATIONS: vulnerabilities monitored; anomalies analyzed; incidents responded to and recovered from.
CC8 - CHANGE MANAGEMENT: changes to infrastructure, data and software authorized, designed, developed, tested, approved and implemented.
CC9 - RISK MITIGATION: business disruption risk mitigated; vendor and business partner risk managed.

AVAILABILITY
A1: capacity managed; environmental protections, backup and recovery infrastructure in place and tested.

CONFIDENTIALITY
C1: confidential information identified, protected and disposed of per commitments.

PROCESSING INTEGRITY
PI1: processing is complete, valid, accurate, timely and authorized.

PRIVACY
P1-P8: notice, choice and consent, collection limits, use and retention, access, disclosure, quality, and monitoring over personal information.`,
	},
	{
		ID:          "hipaa",
		Name:        "Health Insurance Portability and Accountability Act",
		ShortName:   "HIPAA",
		Description: "US legislation that provides data privacy and security provisions for safeguarding medical information.",
		Category:    "Healthcare",
		KeyRequirements: []string{
			"Privacy Rule compliance",
			"Security Rule safeguards",
			"Breach notification",
			"Business associate agreements",
			"Minimum necessary standard",
			"Patient rights",
		},
		ExtractedText: `HIPAA - KEY COMPLIANCE REQUIREMENTS FOR PROTECTED HEALTH INFORMATION (PHI)

PRIVACY RULE (45 CFR PART 164, SUBPART E)
Uses and disclosures of PHI limited to treatment, payment and health care operations absent authorization. Minimum necessary standard: requests and disclosures limited to the minimum necessary to accomplish the purpose. Notice of privacy practices required. Patient rights: access to records within 30 days, amendment, accounting of disclosures, restriction requests, confidential communications.

SECURITY RULE (45 CFR PART 164, SUBPART C)
Administrative safeguards: security management process, risk analysis, workforce security, information access management, security awareness training, contingency planning.
Physical safeguards: facility access controls, workstation use and security, device and media controls.
Technical safeguards: unique user identification, emergency access, automatic logoff, encryption and decryption of ePHI, audit controls, integrity controls, transmission security.

BREACH NOTIFICATION RULE (45 CFR PART 164, SUBPART D)
Notification to affected individuals without unreasonable delay and no later than 60 days after discovery. Notification to HHS; media notification for breaches affecting more than 500 residents of a state.

BUSINESS ASSOCIATE AGREEMENTS
Written contract required before PHI is disclosed to a business associate; must establish permitted uses, safeguards, breach reporting, and return or destruction of PHI at termination.

ENFORCEMENT
Civil monetary penalties tiered by culpability up to annual caps per violation category; criminal penalties for knowing misuse.`,
	},
	{
		ID:          "ccpa",
		Name:        "California Consumer Privacy Act",
		ShortName:   "CCPA",
		Description: "California state statute intended to enhance privacy rights and consumer protection for residents of California.",
		Category:    "Data Privacy",
		KeyRequirements: []string{
			"Right to know",
			"Right to delete",
			"Right to opt-out",
			"Non-discrimination",
			"Privacy policy disclosures",
			"Service provider contracts",
		},
		ExtractedText: `CALIFORNIA CONSUMER PRIVACY ACT (CCPA/CPRA) - KEY COMPLIANCE REQUIREMENTS

RIGHT TO KNOW (1798.100, 1798.110, 1798.115)
Consumers may request the categories and specific pieces of personal information collected, the sources, the business or commercial purposes, and the categories of third parties with whom it is shared. Businesses must respond within 45 days.

RIGHT TO DELETE (1798.105)
Consumers may request deletion of personal information collected from them, subject to enumerated exceptions (transactions, security, legal obligations, internal uses compatible with expectations).

RIGHT TO OPT-OUT (1798.120)
Consumers may direct a business not to sell or share their personal information. A clear "Do Not Sell or Share My Personal Information" link is required. Opt-in consent required for consumers under 16.

RIGHT TO CORRECT AND LIMIT (CPRA AMENDMENTS)
Consumers may request correction of inaccurate personal information and may limit the use of sensitive personal information to purposes necessary to perform the services.

NON-DISCRIMINATION (1798.125)
Businesses may not deny goods or services, charge different prices, or provide a different level of quality because a consumer exercised their rights.

NOTICE AND PRIVACY POLICY (1798.130)
Notice at or before collection describing categories and purposes. Privacy policy updated every 12 months describing consumer rights and the categories of information collected, sold or disclosed. Two or more designated methods for submitting requests.

SERVICE PROVIDER CONTRACTS
Written contracts must restrict service providers from retaining, using or disclosing personal information other than for the specified business purpose.`,
	},
}
