package genome

// GRCh38 is the primary assembly of the GRCh38 human genome build.
var GRCh38 = NewGenomeBuild("GRCh38", []*Contig{
	{Name: "1", UCSCName: "chr1", RefSeqName: "NC_000001.11", Length: 248956422},
	{Name: "2", UCSCName: "chr2", RefSeqName: "NC_000002.12", Length: 242193529},
	{Name: "3", UCSCName: "chr3", RefSeqName: "NC_000003.12", Length: 198295559},
	{Name: "4", UCSCName: "chr4", RefSeqName: "NC_000004.12", Length: 190214555},
	{Name: "5", UCSCName: "chr5", RefSeqName: "NC_000005.10", Length: 181538259},
	{Name: "6", UCSCName: "chr6", RefSeqName: "NC_000006.12", Length: 170805979},
	{Name: "7", UCSCName: "chr7", RefSeqName: "NC_000007.14", Length: 159345973},
	{Name: "8", UCSCName: "chr8", RefSeqName: "NC_000008.11", Length: 145138636},
	{Name: "9", UCSCName: "chr9", RefSeqName: "NC_000009.12", Length: 138394717},
	{Name: "10", UCSCName: "chr10", RefSeqName: "NC_000010.11", Length: 133797422},
	{Name: "11", UCSCName: "chr11", RefSeqName: "NC_000011.10", Length: 135086622},
	{Name: "12", UCSCName: "chr12", RefSeqName: "NC_000012.12", Length: 133275309},
	{Name: "13", UCSCName: "chr13", RefSeqName: "NC_000013.11", Length: 114364328},
	{Name: "14", UCSCName: "chr14", RefSeqName: "NC_000014.9", Length: 107043718},
	{Name: "15", UCSCName: "chr15", RefSeqName: "NC_000015.10", Length: 101991189},
	{Name: "16", UCSCName: "chr16", RefSeqName: "NC_000016.10", Length: 90338345},
	{Name: "17", UCSCName: "chr17", RefSeqName: "NC_000017.11", Length: 83257441},
	{Name: "18", UCSCName: "chr18", RefSeqName: "NC_000018.10", Length: 80373285},
	{Name: "19", UCSCName: "chr19", RefSeqName: "NC_000019.10", Length: 58617616},
	{Name: "20", UCSCName: "chr20", RefSeqName: "NC_000020.11", Length: 64444167},
	{Name: "21", UCSCName: "chr21", RefSeqName: "NC_000021.9", Length: 46709983},
	{Name: "22", UCSCName: "chr22", RefSeqName: "NC_000022.11", Length: 50818468},
	{Name: "X", UCSCName: "chrX", RefSeqName: "NC_000023.11", Length: 156040895},
	{Name: "Y", UCSCName: "chrY", RefSeqName: "NC_000024.10", Length: 57227415},
	{Name: "MT", UCSCName: "chrM", RefSeqName: "NC_012920.1", Length: 16569},
})

// GRCh37 is the primary assembly of the GRCh37 human genome build.
var GRCh37 = NewGenomeBuild("GRCh37", []*Contig{
	{Name: "1", UCSCName: "chr1", Length: 249250621},
	{Name: "2", UCSCName: "chr2", Length: 243199373},
	{Name: "3", UCSCName: "chr3", Length: 198022430},
	{Name: "4", UCSCName: "chr4", Length: 191154276},
	{Name: "5", UCSCName: "chr5", Length: 180915260},
	{Name: "6", UCSCName: "chr6", Length: 171115067},
	{Name: "7", UCSCName: "chr7", Length: 159138663},
	{Name: "8", UCSCName: "chr8", Length: 146364022},
	{Name: "9", UCSCName: "chr9", Length: 141213431},
	{Name: "10", UCSCName: "chr10", Length: 135534747},
	{Name: "11", UCSCName: "chr11", Length: 135006516},
	{Name: "12", UCSCName: "chr12", Length: 133851895},
	{Name: "13", UCSCName: "chr13", Length: 115169878},
	{Name: "14", UCSCName: "chr14", Length: 107349540},
	{Name: "15", UCSCName: "chr15", Length: 102531392},
	{Name: "16", UCSCName: "chr16", Length: 90354753},
	{Name: "17", UCSCName: "chr17", Length: 81195210},
	{Name: "18", UCSCName: "chr18", Length: 78077248},
	{Name: "19", UCSCName: "chr19", Length: 59128983},
	{Name: "20", UCSCName: "chr20", Length: 63025520},
	{Name: "21", UCSCName: "chr21", Length: 48129895},
	{Name: "22", UCSCName: "chr22", Length: 51304566},
	{Name: "X", UCSCName: "chrX", Length: 155270560},
	{Name: "Y", UCSCName: "chrY", Length: 59373566},
	{Name: "MT", UCSCName: "chrM", Length: 16569},
})
