package score

// Two abstracts with hand-curated protein annotations, used as the gold
// standard for the evaluation tests. Offsets are flattened start/end pairs.

const abstract1 = "Androgen action in prostate and prostate cancer cells is dependent upon the androgen receptor " +
	"(AR) protein that transcriptionally regulates the expression of androgen-dependent genes in " +
	"the presence of a steroid ligand. Whereas the overall schema of androgen action mediated by " +
	"this receptor protein appears to be relatively simple, androgen signaling is now known to be " +
	"influenced by several other cell signal transduction pathways and here we review the evidence " +
	"that the canonical Wnt signaling pathway also modulates androgen signaling at multiple levels. " +
	"Wnt is a complex signaling pathway whose endpoint involves activation of transcription from " +
	"LEF-1/TCF transcription factors and it is known to be involved in the development and progression " +
	"of numerous human epithelial tumors including prostate cancer. beta-catenin protein, a particularly " +
	"critical molecular component of canonical Wnt signaling is now known to promote androgen signaling " +
	"through its ability to bind to the AR protein in a ligand-dependent fashion and to enhance " +
	"the ability of liganded AR to activate transcription of androgen-regulated genes. Under certain " +
	"conditions, glycogen synthase kinase-3beta (GSK-3beta), a protein serine/threonine kinase that " +
	"regulates beta-catenin degradation within the Wnt signaling pathway, can also phosphorylate " +
	"AR and suppress its ability to activate transcription. Finally, it was recently found that " +
	"the human AR gene itself is a target of LEF-1/TCF-mediated transcription and that AR mRNA is " +
	"highly upregulated by activation of Wnt signaling in prostate cancer cells. Paradoxically, " +
	"Wnt activation also appears to stimulate Akt activity promoting an MDM-2-mediated degradation " +
	"process that reduces AR protein levels in Wnt-stimulated prostate cancer cells. Collectively, " +
	"this information indicates that the multifaceted nature of the interaction between the Wnt " +
	"and the androgen signaling pathways likely has numerous consequences for the development, growth, " +
	"and progression of prostate cancer."

const abstract2 = "Obesity has been recognized as a risk factor for breast cancer. Adipocyte-derived leptin may " +
	"play as a paracrine regulator on the growth of breast cancer cells. Expression of both leptin " +
	"and its OB-Rb receptor was detected in human breast cancer ZR-75-1 cells and further induced " +
	"by leptin, suggesting that both expression and message mediation of leptin were autoregulated " +
	"by itself. With cell counting and MTT assay, we had observed leptin stimulated ZR-75-1 growth " +
	"in dose- and time-dependent manners. To study what steps of cell cycle progression leptin may " +
	"involve in, we analyzed cell-cycle profile with flow cytometric analysis, mRNA and protein " +
	"expressions of four cell-cycle regulators with RT-PCR and Western blotting analysis. Under " +
	"the treatment of leptin, the G1 arrest of cells was reduced accompanied with up-regulation " +
	"of G1 phase-specific cyclin D1 and proto-oncogene c-Myc, but down-regulation of cyclin-dependent " +
	"kinase inhibitor p21(WAF1/CIP1) and tumor suppressor p53. Furthermore, JAK2 inhibitor AG490, " +
	"PI3K/Akt inhibitor Wortmannin, and MEK/ERK1/2 inhibitor PD98059 were efficiently prevented " +
	"leptin-promoted cell growth. Effect of cooperation between leptin and estrogen on ZR-75-1 growth " +
	"had been observed. Collectively, the results showed that the proliferative effect of leptin " +
	"on ZR-75-1 was associated with the up-regulation of cyclin D1 and c-Myc and down-regulation " +
	"of tumor suppressor p53 and p21(WAF1/CIP1) plausibly through a hypothesized JAK2-PI3K/Akt-MEK/ERK " +
	"pathway. The leptin- and OB-Rb-expressing capability of ZR-75-1 created a possible autocrine " +
	"control of leptin, in which signal could be effectively amplified by itself, on cell growth."

var goldDoc1 = []int{
	0, 8, 76, 93, 95, 97, 484, 487, 560, 563, 652, 657,
	658, 661, 813, 825, 892, 895, 984, 986, 1064, 1066, 1148, 1178,
	1180, 1189, 1241, 1253, 1277, 1280, 1323, 1325, 1424, 1426, 1454, 1459,
	1460, 1463, 1496, 1498, 1543, 1546, 1598, 1601, 1639, 1642, 1665, 1670,
	1713, 1715, 1734, 1737, 1873, 1876, 1885, 1893,
}

var goldDoc2 = []int{
	0, 8, 64, 88, 180, 186, 195, 209, 283, 289, 348, 354,
	435, 441, 551, 557, 856, 865, 885, 890, 949, 963, 985, 988,
	1003, 1007, 1018, 1023, 1025, 1029, 1030, 1033, 1044, 1054, 1060, 1063,
	1064, 1068, 1081, 1088, 1175, 1181, 1186, 1194, 1298, 1304, 1357, 1366,
	1371, 1376, 1417, 1420, 1425, 1439, 1473, 1477, 1478, 1482, 1483, 1486,
	1487, 1490, 1491, 1494, 1508, 1514, 1520, 1525,
}

// every other gold annotation
var missingHalfDoc1 = []int{
	0, 8, 95, 97, 560, 563, 658, 661, 892, 895, 1064, 1066,
	1180, 1189, 1277, 1280, 1424, 1426, 1460, 1463, 1543, 1546, 1639, 1642,
	1713, 1715, 1873, 1876,
}

var missingHalfDoc2 = []int{
	0, 8, 180, 186, 283, 289, 435, 441, 856, 865, 949, 963,
	1003, 1007, 1025, 1029, 1044, 1054, 1064, 1068, 1175, 1181, 1298, 1304,
	1371, 1376, 1425, 1439, 1478, 1482, 1487, 1490, 1508, 1514,
}

// doc 1 only
var mixedResultDoc1 = []int{
	76, 98, 158, 182, 652, 661, 813, 833, 984, 994, 1064, 1066,
	1096, 1120, 1157, 1178, 1454, 1463, 1639, 1642,
}
